package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		first_name TEXT,
		last_name TEXT,
		phone_number TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		user_type TEXT NOT NULL,
		verification_status TEXT NOT NULL,
		verification_date DATETIME,
		trust_score REAL,
		email_verified BOOLEAN,
		phone_verified BOOLEAN,
		accept_marketing BOOLEAN,
		two_factor_enabled BOOLEAN,
		last_active DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createUserProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL,
		profile_image TEXT,
		bio TEXT,
		date_of_birth DATETIME,
		county TEXT,
		sub_county TEXT,
		ward TEXT,
		postal_address TEXT,
		postal_code TEXT,
		preferred_language TEXT,
		preferred_currency TEXT,
		notification_preferences TEXT,
		profile_visibility TEXT,
		show_phone BOOLEAN,
		show_email BOOLEAN,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createVendorProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE vendor_profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL,
		business_name TEXT NOT NULL,
		business_registration_number TEXT,
		business_type TEXT NOT NULL,
		kra_pin TEXT,
		shop_name TEXT NOT NULL,
		shop_description TEXT,
		shop_category TEXT NOT NULL,
		shop_logo TEXT,
		physical_address TEXT NOT NULL,
		building_name TEXT,
		floor_number TEXT,
		shop_number TEXT,
		landmark TEXT,
		latitude REAL,
		longitude REAL,
		business_phone TEXT NOT NULL,
		business_email TEXT,
		whatsapp_number TEXT,
		operating_hours TEXT,
		delivery_available BOOLEAN,
		pickup_available BOOLEAN,
		token_balance INTEGER NOT NULL DEFAULT 0 CHECK (token_balance >= 0),
		total_tokens_purchased INTEGER NOT NULL DEFAULT 0,
		total_tokens_used INTEGER NOT NULL DEFAULT 0,
		total_sales REAL,
		total_orders INTEGER,
		average_rating REAL,
		response_rate REAL,
		is_featured BOOLEAN,
		is_premium BOOLEAN,
		auto_approve_orders BOOLEAN,
		shop_established_date DATETIME,
		joined_platform_date DATETIME,
		last_token_purchase DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createUserVerificationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_verifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		document_type TEXT NOT NULL,
		document_file TEXT NOT NULL,
		document_number TEXT,
		submitted_at DATETIME,
		verified_by TEXT,
		verified_at DATETIME,
		verification_notes TEXT,
		is_approved BOOLEAN,
		expiry_date DATETIME,
		is_primary BOOLEAN,
		UNIQUE (user_id, document_type, document_number)
	);`)
}

func createLoginAttemptTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE login_attempts (
		id TEXT PRIMARY KEY,
		user_id TEXT,
		email_or_username TEXT NOT NULL,
		ip_address TEXT NOT NULL,
		user_agent TEXT,
		success BOOLEAN,
		timestamp DATETIME
	);`)
}

func createUserActivityTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_activities (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		activity_type TEXT NOT NULL,
		description TEXT,
		ip_address TEXT NOT NULL,
		user_agent TEXT,
		metadata TEXT,
		timestamp DATETIME
	);`)
}

func createAllTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	createUserTable(t, db)
	createUserProfileTable(t, db)
	createVendorProfileTable(t, db)
	createUserVerificationTable(t, db)
	createLoginAttemptTable(t, db)
	createUserActivityTable(t, db)
}
