package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campusit/internal/asset"
	"campusit/internal/common"
	"campusit/internal/request"
	"campusit/internal/ticket"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const cacheTTL = 30 * time.Second

var computeTypes = []string{asset.TypeDesktop, asset.TypeLaptop, asset.TypeServer}

type Service struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewService accepts a nil redis client; caching is then disabled.
func NewService(db *gorm.DB, redisClient *redis.Client) *Service {
	return &Service{db: db, redis: redisClient}
}

// Dashboard returns the role-shaped stats payload, cached per user for a
// short window. Each role sees a different slice of the system.
func (s *Service) Dashboard(ctx context.Context, role common.Role, userID uuid.UUID, departmentID, labID *uuid.UUID) (map[string]interface{}, error) {
	cacheKey := fmt.Sprintf("dashboard_stats:%s:%s", role, userID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var out map[string]interface{}
			if json.Unmarshal([]byte(cached), &out) == nil {
				return out, nil
			}
		}
	}

	var (
		out map[string]interface{}
		err error
	)
	switch role {
	case common.RoleDean:
		out, err = s.deanStats()
	case common.RoleHOD:
		out, err = s.hodStats(userID, departmentID)
	case common.RoleAdmin:
		out, err = s.adminStats()
	case common.RoleLabIncharge:
		out, err = s.labInchargeStats(userID, labID)
	default:
		return nil, common.Validationf("invalid role %q", role)
	}
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(out); err == nil {
			s.redis.Set(ctx, cacheKey, payload, cacheTTL)
		}
	}

	return out, nil
}

func (s *Service) deanStats() (map[string]interface{}, error) {
	var totalSystems, working, underMaintenance, damaged int64
	var openTickets, departments, labs, pendingRequests int64

	steps := []func() error{
		func() error {
			return s.db.Model(&asset.Asset{}).Where("type IN ?", computeTypes).Count(&totalSystems).Error
		},
		func() error {
			return s.db.Model(&asset.Asset{}).Where("type IN ? AND status = ?", computeTypes, asset.StatusActive).Count(&working).Error
		},
		func() error {
			return s.db.Model(&asset.Asset{}).Where("type IN ? AND status = ?", computeTypes, asset.StatusUnderMaintenance).Count(&underMaintenance).Error
		},
		func() error {
			return s.db.Model(&asset.Asset{}).Where("type IN ? AND status = ?", computeTypes, asset.StatusDamaged).Count(&damaged).Error
		},
		func() error {
			return s.db.Model(&ticket.Ticket{}).Where("status <> ?", ticket.StatusResolved).Count(&openTickets).Error
		},
		func() error { return s.db.Table("departments").Count(&departments).Error },
		func() error { return s.db.Table("labs").Count(&labs).Error },
		func() error {
			return s.db.Model(&request.Request{}).Where("status = ?", request.StatusPending).Count(&pendingRequests).Error
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, common.Storef(err, "failed to compute dean stats")
		}
	}

	return map[string]interface{}{
		"total_systems":    totalSystems,
		"ready_for_use":    working,
		"service":          underMaintenance + damaged,
		"priority_tasks":   openTickets + pendingRequests,
		"departments":      departments,
		"labs":             labs,
		"pending_requests": pendingRequests,
		"last_sync":        time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *Service) hodStats(userID uuid.UUID, departmentID *uuid.UUID) (map[string]interface{}, error) {
	if departmentID == nil {
		return nil, common.Validationf("no department assigned")
	}

	var totalSystems, working, underMaintenance int64
	var myRequests, pendingRequests, approvedRequests int64

	steps := []func() error{
		func() error {
			return s.db.Model(&asset.Asset{}).Where("department_id = ?", *departmentID).Count(&totalSystems).Error
		},
		func() error {
			return s.db.Model(&asset.Asset{}).Where("department_id = ? AND status = ?", *departmentID, asset.StatusActive).Count(&working).Error
		},
		func() error {
			return s.db.Model(&asset.Asset{}).Where("department_id = ? AND status = ?", *departmentID, asset.StatusUnderMaintenance).Count(&underMaintenance).Error
		},
		func() error {
			return s.db.Model(&request.Request{}).Where("created_by_id = ?", userID).Count(&myRequests).Error
		},
		func() error {
			return s.db.Model(&request.Request{}).Where("created_by_id = ? AND status = ?", userID, request.StatusPending).Count(&pendingRequests).Error
		},
		func() error {
			return s.db.Model(&request.Request{}).Where("created_by_id = ? AND status = ?", userID, request.StatusApproved).Count(&approvedRequests).Error
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, common.Storef(err, "failed to compute HOD stats")
		}
	}

	return map[string]interface{}{
		"total_systems":     totalSystems,
		"working_systems":   working,
		"under_maintenance": underMaintenance,
		"my_requests":       myRequests,
		"pending_requests":  pendingRequests,
		"approved_requests": approvedRequests,
	}, nil
}

func (s *Service) adminStats() (map[string]interface{}, error) {
	var totalSystems, totalServers, totalRouters int64
	var pendingTickets, inProgressTickets, completedToday int64

	todayStart := time.Now().Truncate(24 * time.Hour)

	steps := []func() error{
		func() error {
			return s.db.Model(&asset.Asset{}).Where("type IN ?", []string{asset.TypeDesktop, asset.TypeLaptop}).Count(&totalSystems).Error
		},
		func() error {
			return s.db.Model(&asset.Asset{}).Where("type = ?", asset.TypeServer).Count(&totalServers).Error
		},
		func() error {
			return s.db.Model(&asset.Asset{}).Where("type IN ?", []string{asset.TypeRouter, asset.TypeSwitch}).Count(&totalRouters).Error
		},
		func() error {
			return s.db.Model(&ticket.Ticket{}).Where("status IN ?", []string{ticket.StatusSubmitted, ticket.StatusApproved, ticket.StatusQueued}).Count(&pendingTickets).Error
		},
		func() error {
			return s.db.Model(&ticket.Ticket{}).Where("status = ?", ticket.StatusProcessing).Count(&inProgressTickets).Error
		},
		func() error {
			return s.db.Model(&ticket.Ticket{}).Where("status = ? AND resolved_at >= ?", ticket.StatusDeployed, todayStart).Count(&completedToday).Error
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, common.Storef(err, "failed to compute admin stats")
		}
	}

	return map[string]interface{}{
		"total_systems":       totalSystems,
		"total_servers":       totalServers,
		"total_routers":       totalRouters,
		"pending_tickets":     pendingTickets,
		"in_progress_tickets": inProgressTickets,
		"completed_today":     completedToday,
	}, nil
}

func (s *Service) labInchargeStats(userID uuid.UUID, labID *uuid.UUID) (map[string]interface{}, error) {
	if labID == nil {
		return nil, common.Validationf("no lab assigned")
	}

	var totalSystems, working, issues, myTickets, pendingTickets int64

	steps := []func() error{
		func() error {
			return s.db.Model(&asset.Asset{}).Where("lab_id = ?", *labID).Count(&totalSystems).Error
		},
		func() error {
			return s.db.Model(&asset.Asset{}).Where("lab_id = ? AND status = ?", *labID, asset.StatusActive).Count(&working).Error
		},
		func() error {
			return s.db.Model(&asset.Asset{}).Where("lab_id = ? AND status <> ?", *labID, asset.StatusActive).Count(&issues).Error
		},
		func() error {
			return s.db.Model(&ticket.Ticket{}).Where("created_by_id = ?", userID).Count(&myTickets).Error
		},
		func() error {
			return s.db.Model(&ticket.Ticket{}).Where("created_by_id = ? AND status IN ?", userID, []string{ticket.StatusSubmitted, ticket.StatusApproved}).Count(&pendingTickets).Error
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, common.Storef(err, "failed to compute lab incharge stats")
		}
	}

	return map[string]interface{}{
		"total_systems":   totalSystems,
		"working_systems": working,
		"issues":          issues,
		"my_tickets":      myTickets,
		"pending_tickets": pendingTickets,
	}, nil
}
