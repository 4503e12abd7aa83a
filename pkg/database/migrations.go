package database

import (
	"campusit/internal/activity"
	"campusit/internal/asset"
	"campusit/internal/auth"
	"campusit/internal/department"
	"campusit/internal/lab"
	"campusit/internal/request"
	"campusit/internal/ticket"

	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	// Enable pgcrypto for gen_random_uuid()
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return err
	}

	// Auto-migrate all models
	err := db.AutoMigrate(
		&auth.User{},
		&department.Department{},
		&lab.Lab{},
		&asset.Asset{},
		&ticket.Ticket{},
		&request.Request{},
		&activity.ActivityLog{},
	)

	if err != nil {
		return err
	}

	if err := createWorkflowIndexes(db); err != nil {
		return err
	}

	if err := createAssetIndexes(db); err != nil {
		return err
	}

	return createActivityIndexes(db)
}

// Composite indexes for the ticket and request dashboards
func createWorkflowIndexes(db *gorm.DB) error {
	// Index for tickets by department and status
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_department_status
		ON tickets (department_id, status)
	`).Error; err != nil {
		return err
	}

	// Index for tickets by creator
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_created_by
		ON tickets (created_by_id, created_at DESC)
	`).Error; err != nil {
		return err
	}

	// Index for requests by department and status
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_requests_department_status
		ON requests (department_id, status)
	`).Error; err != nil {
		return err
	}

	// Index for requests by assigned admin
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_requests_assigned_admin
		ON requests (assigned_admin_id, status)
	`).Error; err != nil {
		return err
	}

	return nil
}

func createAssetIndexes(db *gorm.DB) error {
	// Index for assets by department
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_assets_department
		ON assets (department_id, status)
	`).Error; err != nil {
		return err
	}

	// Index for assets by lab
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_assets_lab
		ON assets (lab_id)
	`).Error; err != nil {
		return err
	}

	return nil
}

func createActivityIndexes(db *gorm.DB) error {
	// Index for activity feed by department
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_activity_logs_department
		ON activity_logs (department_id, created_at DESC)
	`).Error; err != nil {
		return err
	}

	// Index for activity feed by user
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_activity_logs_user
		ON activity_logs (user_id, created_at DESC)
	`).Error; err != nil {
		return err
	}

	return nil
}
