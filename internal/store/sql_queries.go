// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package store

const (
	userColumns = `id, email, first_name, last_name, profile_image_url, created_at, updated_at`

	getUser = `SELECT id, email, first_name, last_name, profile_image_url, created_at, updated_at
    FROM users
    WHERE id = $1;`

	upsertUser = `INSERT INTO users (id, email, first_name, last_name, profile_image_url)
    VALUES ($1, $2, $3, $4, $5)
    ON CONFLICT (id) DO UPDATE SET
        email = EXCLUDED.email,
        first_name = EXCLUDED.first_name,
        last_name = EXCLUDED.last_name,
        profile_image_url = EXCLUDED.profile_image_url,
        updated_at = now()
    RETURNING id, email, first_name, last_name, profile_image_url, created_at, updated_at;`

	categoryColumns = `id, name, icon, color, user_id, created_at`

	getCategories = `SELECT id, name, icon, color, user_id, created_at
    FROM categories
    WHERE user_id = $1
    ORDER BY id;`

	countCategories = `SELECT COUNT(id) FROM categories WHERE user_id = $1;`

	createCategory = `INSERT INTO categories (name, icon, color, user_id)
    VALUES ($1, $2, $3, $4)
    RETURNING id, name, icon, color, user_id, created_at;`

	deleteCategory = `DELETE FROM categories WHERE id = $1 AND user_id = $2;`

	// Money columns are cast to text so the driver hands back the exact
	// NUMERIC(10,2) representation instead of a float.
	itemColumns = `id, name, description, category_id, location,
        purchase_price::text, current_value::text,
        purchase_date, expiry_date, warranty_expiry,
        barcode, qr_code, photo_url, receipt_url,
        user_id, created_at, updated_at`

	createItem = `INSERT INTO items (
        name, description, category_id, location,
        purchase_price, current_value,
        purchase_date, expiry_date, warranty_expiry,
        barcode, qr_code, photo_url, receipt_url, user_id
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    RETURNING ` + itemColumns + `;`

	deleteItem = `DELETE FROM items WHERE id = $1 AND user_id = $2;`

	getItemStats = `SELECT COUNT(id), COALESCE(SUM(current_value), 0)::text
    FROM items
    WHERE user_id = $1;`

	getReferencedUploads = `SELECT photo_url, receipt_url
    FROM items
    WHERE photo_url IS NOT NULL OR receipt_url IS NOT NULL;`
)
