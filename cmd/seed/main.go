package main

import (
	"fmt"
	"log"
	"time"

	"campusit/internal/asset"
	"campusit/internal/auth"
	"campusit/internal/common"
	"campusit/internal/department"
	"campusit/internal/lab"
	"campusit/internal/request"
	"campusit/internal/ticket"
	"campusit/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeds a development database with a realistic campus layout: a dean, an
// admin, three departments, labs with incharges, a fleet of CSE assets and a
// few open requests and tickets. Safe to re-run; existing rows are kept.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using environment variables")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	log.Println("🌱 Starting database seed...")

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		log.Fatalf("❌ Failed to hash seed password: %v", err)
	}
	password := string(hash)

	// 1. Core users
	log.Println("Creating users...")
	dean := upsertUser(db, auth.User{
		Email:        "dean@example.com",
		Name:         "Dr. Robert Dean",
		PasswordHash: password,
		Role:         common.RoleDean,
		IsActive:     true,
	})
	admin := upsertUser(db, auth.User{
		Email:        "admin@example.com",
		Name:         "System Administrator",
		PasswordHash: password,
		Role:         common.RoleAdmin,
		IsActive:     true,
	})

	// 2. Departments
	log.Println("Creating departments...")
	cse := upsertDepartment(db, department.Department{
		Name:        "Computer Science & Engineering",
		Code:        "CSE",
		Description: "Department of Computer Science and Engineering",
	})
	ece := upsertDepartment(db, department.Department{
		Name:        "Electronics & Communication Engineering",
		Code:        "ECE",
		Description: "Department of Electronics and Communication Engineering",
	})
	upsertDepartment(db, department.Department{
		Name:        "Mechanical Engineering",
		Code:        "MECH",
		Description: "Department of Mechanical Engineering",
	})

	// 3. HODs, linked both directions
	log.Println("Creating HODs...")
	cseHod := upsertUser(db, auth.User{
		Email:        "hod@example.com",
		Name:         "Dr. Sarah Johnson",
		PasswordHash: password,
		Role:         common.RoleHOD,
		DepartmentID: &cse.ID,
		IsActive:     true,
	})
	eceHod := upsertUser(db, auth.User{
		Email:        "hod.ece@example.com",
		Name:         "Dr. Michael Chen",
		PasswordHash: password,
		Role:         common.RoleHOD,
		DepartmentID: &ece.ID,
		IsActive:     true,
	})
	db.Model(&department.Department{}).Where("id = ?", cse.ID).Update("hod_id", cseHod.ID)
	db.Model(&department.Department{}).Where("id = ?", ece.ID).Update("hod_id", eceHod.ID)

	// 4. Labs
	log.Println("Creating labs...")
	cseLab1 := upsertLab(db, lab.Lab{
		Name:         "Programming Lab 1",
		Code:         "CSE-LAB-301",
		DepartmentID: cse.ID,
		Capacity:     60,
		Location:     "Block A, 3rd Floor",
	})
	cseLab2 := upsertLab(db, lab.Lab{
		Name:         "Data Structures Lab",
		Code:         "CSE-LAB-302",
		DepartmentID: cse.ID,
		Capacity:     50,
		Location:     "Block A, 3rd Floor",
	})
	upsertLab(db, lab.Lab{
		Name:         "Digital Electronics Lab",
		Code:         "ECE-LAB-201",
		DepartmentID: ece.ID,
		Capacity:     40,
		Location:     "Block B, 2nd Floor",
	})

	// 5. Lab incharges
	log.Println("Creating lab incharges...")
	incharge1 := upsertUser(db, auth.User{
		Email:        "lab@example.com",
		Name:         "John Lab Tech",
		PasswordHash: password,
		Role:         common.RoleLabIncharge,
		DepartmentID: &cse.ID,
		LabID:        &cseLab1.ID,
		IsActive:     true,
	})
	incharge2 := upsertUser(db, auth.User{
		Email:        "lab.cse2@example.com",
		Name:         "Jane Smith",
		PasswordHash: password,
		Role:         common.RoleLabIncharge,
		DepartmentID: &cse.ID,
		LabID:        &cseLab2.ID,
		IsActive:     true,
	})
	db.Model(&lab.Lab{}).Where("id = ?", cseLab1.ID).Update("incharge_id", incharge1.ID)
	db.Model(&lab.Lab{}).Where("id = ?", cseLab2.ID).Update("incharge_id", incharge2.ID)

	// 6. Assets
	log.Println("Creating assets...")
	var assets []asset.Asset

	// CSE Lab 301 - 45 desktops, last three under maintenance
	for i := 1; i <= 45; i++ {
		status := asset.StatusActive
		if i > 42 {
			status = asset.StatusUnderMaintenance
		}
		assets = append(assets, asset.Asset{
			AssetNumber:  fmt.Sprintf("CSE-LAB301-PC%02d", i),
			Name:         fmt.Sprintf("Desktop PC %d", i),
			Type:         asset.TypeDesktop,
			Category:     "Computer",
			Brand:        "Dell",
			Model:        "OptiPlex 7090",
			Status:       status,
			Processor:    "Intel Core i7-12700",
			RAM:          "16GB DDR4",
			HDD:          "512GB NVMe SSD",
			DepartmentID: cse.ID,
			LabID:        &cseLab1.ID,
			Location:     "CSE Lab 301",
		})
	}

	// CSE Lab 302 - 40 desktops, last two damaged
	for i := 1; i <= 40; i++ {
		status := asset.StatusActive
		if i > 38 {
			status = asset.StatusDamaged
		}
		assets = append(assets, asset.Asset{
			AssetNumber:  fmt.Sprintf("CSE-LAB302-PC%02d", i),
			Name:         fmt.Sprintf("Desktop PC %d", i),
			Type:         asset.TypeDesktop,
			Category:     "Computer",
			Brand:        "HP",
			Model:        "ProDesk 600",
			Status:       status,
			Processor:    "Intel Core i5-11500",
			RAM:          "8GB DDR4",
			HDD:          "256GB SSD",
			DepartmentID: cse.ID,
			LabID:        &cseLab2.ID,
			Location:     "CSE Lab 302",
		})
	}

	// Servers
	for i := 1; i <= 5; i++ {
		assets = append(assets, asset.Asset{
			AssetNumber:  fmt.Sprintf("CSE-SRV-%02d", i),
			Name:         fmt.Sprintf("Application Server %d", i),
			Type:         asset.TypeServer,
			Category:     "Server",
			Brand:        "Dell",
			Model:        "PowerEdge R740",
			Status:       asset.StatusActive,
			DepartmentID: cse.ID,
			Location:     "Server Room",
		})
	}

	// Network devices
	for i := 1; i <= 10; i++ {
		assets = append(assets, asset.Asset{
			AssetNumber:  fmt.Sprintf("NET-RTR-%02d", i),
			Name:         fmt.Sprintf("Network Router %d", i),
			Type:         asset.TypeRouter,
			Category:     "Networking",
			Brand:        "Cisco",
			Model:        "ISR 4000",
			Status:       asset.StatusActive,
			DepartmentID: cse.ID,
			Location:     "Network Room",
		})
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(assets, 100).Error; err != nil {
		log.Fatalf("❌ Failed to seed assets: %v", err)
	}

	// 7. Requests
	log.Println("Creating requests...")
	now := time.Now()
	seedRequest(db, request.Request{
		RequestNumber: "REQ-2026-0001",
		Title:         "New System Allocation for Lab 303",
		Description:   "Request for 50 new desktop systems for the newly setup Programming Lab 303",
		Type:          request.TypeNewSystem,
		Priority:      common.PriorityHigh,
		Status:        request.StatusPending,
		DepartmentID:  cse.ID,
		CreatedByID:   cseHod.ID,
	})
	seedRequest(db, request.Request{
		RequestNumber: "REQ-2026-0002",
		Title:         "Hardware Repair - Projector",
		Description:   "Projector in Lab 302 needs repair. Display is flickering.",
		Type:          request.TypeHardwareRepair,
		Priority:      common.PriorityNormal,
		Status:        request.StatusApproved,
		DepartmentID:  cse.ID,
		CreatedByID:   cseHod.ID,
		ApprovedByID:  &dean.ID,
		ApprovedAt:    &now,
	})

	// 8. Tickets
	log.Println("Creating tickets...")
	var pc12 asset.Asset
	var pc12ID *uuid.UUID
	if err := db.Where("asset_number = ?", "CSE-LAB301-PC12").First(&pc12).Error; err == nil {
		pc12ID = &pc12.ID
	}
	seedTicket(db, ticket.Ticket{
		TicketNumber: "TKT-2026-0001",
		Title:        "Monitor not working - PC12",
		Description:  "Monitor on PC12 is not displaying anything. Power LED is on but screen is black.",
		IssueType:    ticket.IssueHardware,
		Priority:     common.PriorityHigh,
		Status:       ticket.StatusSubmitted,
		AssetID:      pc12ID,
		DepartmentID: cse.ID,
		LabID:        &cseLab1.ID,
		CreatedByID:  incharge1.ID,
	})
	seedTicket(db, ticket.Ticket{
		TicketNumber: "TKT-2026-0002",
		Title:        "Software Installation - VS Code",
		Description:  "Need to install Visual Studio Code on all systems in Lab 302",
		IssueType:    ticket.IssueSoftware,
		Priority:     common.PriorityNormal,
		Status:       ticket.StatusProcessing,
		DepartmentID: cse.ID,
		LabID:        &cseLab2.ID,
		CreatedByID:  incharge2.ID,
		AssignedToID: &admin.ID,
	})
	seedTicket(db, ticket.Ticket{
		TicketNumber: "TKT-2026-0003",
		Title:        "Network connectivity issue",
		Description:  "Systems in Lab 301 are unable to connect to the internet",
		IssueType:    ticket.IssueNetwork,
		Priority:     common.PriorityCritical,
		Status:       ticket.StatusQueued,
		DepartmentID: cse.ID,
		LabID:        &cseLab1.ID,
		CreatedByID:  incharge1.ID,
	})

	log.Println("✅ Database seeded successfully!")
	log.Println("📊 Summary:")
	logCount(db, &auth.User{}, "Users")
	logCount(db, &department.Department{}, "Departments")
	logCount(db, &lab.Lab{}, "Labs")
	logCount(db, &asset.Asset{}, "Assets")
	logCount(db, &request.Request{}, "Requests")
	logCount(db, &ticket.Ticket{}, "Tickets")
}

func upsertUser(db *gorm.DB, u auth.User) auth.User {
	var out auth.User
	if err := db.Where(auth.User{Email: u.Email}).Attrs(u).FirstOrCreate(&out).Error; err != nil {
		log.Fatalf("❌ Failed to seed user %s: %v", u.Email, err)
	}
	return out
}

func upsertDepartment(db *gorm.DB, d department.Department) department.Department {
	var out department.Department
	if err := db.Where(department.Department{Code: d.Code}).Attrs(d).FirstOrCreate(&out).Error; err != nil {
		log.Fatalf("❌ Failed to seed department %s: %v", d.Code, err)
	}
	return out
}

func upsertLab(db *gorm.DB, l lab.Lab) lab.Lab {
	var out lab.Lab
	if err := db.Where(lab.Lab{Code: l.Code}).Attrs(l).FirstOrCreate(&out).Error; err != nil {
		log.Fatalf("❌ Failed to seed lab %s: %v", l.Code, err)
	}
	return out
}

func seedRequest(db *gorm.DB, r request.Request) {
	var out request.Request
	if err := db.Where(request.Request{RequestNumber: r.RequestNumber}).Attrs(r).FirstOrCreate(&out).Error; err != nil {
		log.Fatalf("❌ Failed to seed request %s: %v", r.RequestNumber, err)
	}
}

func seedTicket(db *gorm.DB, t ticket.Ticket) {
	var out ticket.Ticket
	if err := db.Where(ticket.Ticket{TicketNumber: t.TicketNumber}).Attrs(t).FirstOrCreate(&out).Error; err != nil {
		log.Fatalf("❌ Failed to seed ticket %s: %v", t.TicketNumber, err)
	}
}

func logCount(db *gorm.DB, model interface{}, label string) {
	var n int64
	db.Model(model).Count(&n)
	log.Printf("- %s: %d", label, n)
}
