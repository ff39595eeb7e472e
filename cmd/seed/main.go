// Package main provides a CLI tool for seeding the backend with demo data.
//
// The seeder goes through the domain services so references, totals and
// audit entries are produced exactly as they are in production.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"edr/internal/domain/auth"
	"edr/internal/domain/hr"
	"edr/internal/domain/interventions"
	"edr/internal/domain/inventory"
	"edr/internal/domain/projects"
	"edr/internal/domain/quotes"
	"edr/internal/domain/settings"
	"edr/internal/domain/suppliers"
	"edr/internal/infrastructure/storage"
	"edr/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	backend, err := storage.New(ctx, storage.Config{
		Kind:        storage.Kind(getEnv("STORAGE_BACKEND", string(storage.KindPostgres))),
		DSN:         os.Getenv("DATABASE_URL"),
		TablePrefix: os.Getenv("TABLE_PREFIX"),
	})
	if err != nil {
		log.Fatalw("failed to initialize storage backend", "error", err)
	}
	defer backend.Close()

	log.Info("storage backend ready")

	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(getEnv("JWT_SECRET", "change-me-in-production")))
	authService := auth.NewService(backend.Users, jwtService, auth.DefaultServiceConfig())
	if err := authService.EnsureAdmin(ctx,
		getEnv("ADMIN_EMAIL", "admin@edr-solution.fr"),
		getEnv("ADMIN_PASSWORD", "changeme123"),
	); err != nil {
		log.Fatalw("failed to seed admin account", "error", err)
	}
	log.Info("admin account ready")

	settingsService := settings.NewService(backend.Settings, backend.Trail)
	supplierService := suppliers.NewService(backend.Suppliers, backend.TxManager, backend.Trail)
	inventoryService := inventory.NewService(backend.Inventory, backend.TxManager, backend.Trail)
	employeeService := hr.NewEmployeeService(backend.Employees, backend.TxManager, backend.Trail)
	leaveService := hr.NewLeaveService(backend.Leaves, backend.Employees, backend.TxManager, backend.Trail)
	projectService := projects.NewService(backend.Projects, backend.TxManager, backend.Trail)
	interventionService := interventions.NewService(backend.Interventions, backend.TxManager, backend.Trail)
	quoteService := quotes.NewService(backend.Quotes, backend.TxManager, backend.Trail, backend.Numerator, settingsService)

	if err := seedSettings(ctx, settingsService); err != nil {
		log.Fatalw("failed to seed settings", "error", err)
	}
	supplierID, err := seedSuppliers(ctx, supplierService)
	if err != nil {
		log.Fatalw("failed to seed suppliers", "error", err)
	}
	if err := seedInventory(ctx, inventoryService, supplierID); err != nil {
		log.Fatalw("failed to seed inventory", "error", err)
	}
	employeeID, err := seedEmployees(ctx, employeeService)
	if err != nil {
		log.Fatalw("failed to seed employees", "error", err)
	}
	if err := seedLeaveRequests(ctx, leaveService, employeeID); err != nil {
		log.Fatalw("failed to seed leave requests", "error", err)
	}
	projectID, err := seedProjects(ctx, projectService)
	if err != nil {
		log.Fatalw("failed to seed projects", "error", err)
	}
	if err := seedInterventions(ctx, interventionService, projectID); err != nil {
		log.Fatalw("failed to seed interventions", "error", err)
	}
	if err := seedQuotes(ctx, quoteService); err != nil {
		log.Fatalw("failed to seed quotes", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedSettings(ctx context.Context, svc *settings.Service) error {
	cfg, err := svc.Get(ctx)
	if err != nil {
		return err
	}
	cfg.CompanyName = "EDR Solution"
	cfg.Address = "12 rue des Artisans, 69003 Lyon"
	cfg.Phone = "+33 4 72 00 00 00"
	cfg.Email = "contact@edr-solution.fr"
	cfg.SIRET = "123 456 789 00012"
	return svc.Update(ctx, cfg)
}

func seedSuppliers(ctx context.Context, svc *suppliers.Service) (int64, error) {
	first := suppliers.NewSupplier("Rexel Lyon")
	first.ContactName = "Marc Dubois"
	first.Email = "commandes@rexel-lyon.fr"
	first.Phone = "+33 4 72 11 22 33"
	first.Category = "Matériel électrique"
	if err := svc.Create(ctx, first); err != nil {
		return 0, err
	}

	second := suppliers.NewSupplier("Sonepar Rhône")
	second.ContactName = "Claire Petit"
	second.Email = "contact@sonepar-rhone.fr"
	second.Category = "Câblage et connectique"
	if err := svc.Create(ctx, second); err != nil {
		return 0, err
	}

	return first.ID, nil
}

func seedInventory(ctx context.Context, svc *inventory.Service, supplierID int64) error {
	items := []*inventory.Item{
		stockItem("Disjoncteur 16A", "DIS-16A", "Protection", 42, 10, 8.90, supplierID),
		stockItem("Câble RJ45 Cat6 (100m)", "CAB-RJ45", "Câblage", 6, 4, 54.00, supplierID),
		stockItem("Caméra IP extérieure", "CAM-EXT", "Vidéosurveillance", 3, 5, 129.00, supplierID),
		stockItem("Badge RFID", "BDG-RFID", "Contrôle d'accès", 120, 50, 2.40, supplierID),
	}
	for _, item := range items {
		if err := svc.Create(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func stockItem(name, reference, category string, qty, minQty, price float64, supplierID int64) *inventory.Item {
	item := inventory.NewItem(name)
	item.Reference = reference
	item.Category = category
	item.Quantity = qty
	item.MinQuantity = minQty
	item.UnitPrice = price
	item.SupplierID = &supplierID
	item.Location = "Atelier Lyon"
	return item
}

func seedEmployees(ctx context.Context, svc *hr.EmployeeService) (int64, error) {
	first := hr.NewEmployee("Julien Moreau")
	first.Role = "Technicien"
	first.Email = "j.moreau@edr-solution.fr"
	first.HireDate = time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)
	if err := svc.Create(ctx, first); err != nil {
		return 0, err
	}

	second := hr.NewEmployee("Sophie Bernard")
	second.Role = "Chargée d'affaires"
	second.Email = "s.bernard@edr-solution.fr"
	second.HireDate = time.Date(2019, 9, 2, 0, 0, 0, 0, time.UTC)
	if err := svc.Create(ctx, second); err != nil {
		return 0, err
	}

	return first.ID, nil
}

func seedLeaveRequests(ctx context.Context, svc *hr.LeaveService, employeeID int64) error {
	now := time.Now().UTC()
	request := hr.NewLeaveRequest(employeeID,
		now.AddDate(0, 1, 0),
		now.AddDate(0, 1, 7),
	)
	request.Reason = "Congés d'été"
	return svc.Create(ctx, request)
}

func seedProjects(ctx context.Context, svc *projects.Service) (int64, error) {
	project := projects.NewProject("Rénovation réseau agence centre", "Banque Populaire")
	project.Status = projects.StatusActive
	project.Description = "Recâblage complet et remplacement de la baie de brassage"
	if err := svc.Create(ctx, project); err != nil {
		return 0, err
	}

	pending := projects.NewProject("Vidéosurveillance entrepôt", "Translog")
	if err := svc.Create(ctx, pending); err != nil {
		return 0, err
	}

	return project.ID, nil
}

func seedInterventions(ctx context.Context, svc *interventions.Service, projectID int64) error {
	type fixture struct {
		title      string
		client     string
		technician string
		status     interventions.Status
		priority   interventions.Priority
		kind       interventions.Kind
		project    bool
	}
	fixtures := []fixture{
		{"Panne alarme bâtiment A", "Banque Populaire", "Julien Moreau", interventions.StatusInProgress, interventions.PriorityCritical, interventions.KindFailure, true},
		{"Installation contrôle d'accès", "Clinique du Parc", "Julien Moreau", interventions.StatusScheduled, interventions.PriorityHigh, interventions.KindInstall, false},
		{"Maintenance annuelle caméras", "Translog", "Sophie Bernard", interventions.StatusToSchedule, interventions.PriorityMedium, interventions.KindMaintenance, false},
		{"Remplacement lecteur badge HS", "Lycée Jean Macé", "Julien Moreau", interventions.StatusCompleted, interventions.PriorityLow, interventions.KindFailure, false},
		{"Mise à jour firmware centrale", "Banque Populaire", "Sophie Bernard", interventions.StatusInProgress, interventions.PriorityMedium, interventions.KindUpdate, true},
		{"Dépannage interphone hall B", "Régie Immo 69", "Julien Moreau", interventions.StatusWaiting, interventions.PriorityHigh, interventions.KindFailure, false},
		{"Extension réseau atelier", "Mécanique Générale SARL", "Sophie Bernard", interventions.StatusToSchedule, interventions.PriorityLow, interventions.KindInstall, false},
	}
	for _, f := range fixtures {
		iv := interventions.NewIntervention(f.title, f.client, f.technician)
		iv.Status = f.status
		iv.Priority = f.priority
		iv.Kind = f.kind
		if f.project {
			iv.ProjectID = &projectID
		}
		if err := svc.Create(ctx, iv); err != nil {
			return err
		}
	}
	return nil
}

func seedQuotes(ctx context.Context, svc *quotes.Service) error {
	quote := quotes.NewQuote(quotes.Contact{
		Name:    "Clinique du Parc",
		Company: "Clinique du Parc",
		Address: "155 boulevard Stalingrad, 69006 Lyon",
		Email:   "services-generaux@cliniqueduparc.fr",
	}, quotes.Issuer{}, 0)
	if err := svc.Create(ctx, quote); err != nil {
		return err
	}

	if _, err := svc.AddItem(ctx, quote.ID, quotes.Item{
		Kind:      quotes.ItemProduct,
		Name:      "Lecteur de badge mural",
		UnitPrice: 189.00,
		Quantity:  4,
		TaxRate:   20,
	}); err != nil {
		return err
	}
	if _, err := svc.AddItem(ctx, quote.ID, quotes.Item{
		Kind:      quotes.ItemService,
		Name:      "Pose et paramétrage",
		UnitPrice: 350.00,
		Quantity:  1,
		TaxRate:   20,
	}); err != nil {
		return err
	}

	_, err := svc.ChangeStatus(ctx, quote.ID, quotes.StatusSent)
	return err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
