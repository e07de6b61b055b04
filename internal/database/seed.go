package database

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prequaliq/prequaliq_backend/internal/models"
)

// Seeder handles database seeding operations
// #SEED_DATA: Top-level CPV divisions and NUTS level-0/1 codes for lookups
type Seeder struct {
	db *mongo.Database
}

// NewSeeder creates a new database seeder
func NewSeeder(db *mongo.Database) *Seeder {
	return &Seeder{db: db}
}

// SeedData seeds initial reference data
// #IMPLEMENTATION_DECISION: Only seeds if data doesn't exist (idempotent)
func (c *Client) SeedData(ctx context.Context) error {
	seeder := NewSeeder(c.database)
	return seeder.SeedAll(ctx)
}

// SeedAll runs all seed operations
func (s *Seeder) SeedAll(ctx context.Context) error {
	log.Println("Starting reference data seeding...")

	if err := s.SeedCPVCodes(ctx); err != nil {
		return fmt.Errorf("failed to seed CPV codes: %w", err)
	}
	if err := s.SeedNUTSCodes(ctx); err != nil {
		return fmt.Errorf("failed to seed NUTS codes: %w", err)
	}

	log.Println("Reference data seeding completed successfully")
	return nil
}

// SeedCPVCodes seeds the CPV divisions used for questionnaire tagging
func (s *Seeder) SeedCPVCodes(ctx context.Context) error {
	collection := s.db.Collection(models.CPVCode{}.CollectionName())

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("CPV codes already exist, skipping seeding")
		return nil
	}

	codes := cpvDivisions()
	docs := make([]interface{}, len(codes))
	for i := range codes {
		codes[i].BeforeCreate()
		docs[i] = codes[i]
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return err
	}

	log.Printf("Seeded %d CPV codes", len(codes))
	return nil
}

// SeedNUTSCodes seeds the NUTS codes used for supplier geography tagging
func (s *Seeder) SeedNUTSCodes(ctx context.Context) error {
	collection := s.db.Collection(models.NUTSCode{}.CollectionName())

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("NUTS codes already exist, skipping seeding")
		return nil
	}

	codes := nutsCodes()
	docs := make([]interface{}, len(codes))
	for i := range codes {
		codes[i].BeforeCreate()
		docs[i] = codes[i]
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return err
	}

	log.Printf("Seeded %d NUTS codes", len(codes))
	return nil
}

// cpvDivisions returns the top-level CPV divisions
func cpvDivisions() []models.CPVCode {
	return []models.CPVCode{
		{Code: "03000000", Description: "Agricultural, farming, fishing, forestry and related products"},
		{Code: "09000000", Description: "Petroleum products, fuel, electricity and other sources of energy"},
		{Code: "14000000", Description: "Mining, basic metals and related products"},
		{Code: "15000000", Description: "Food, beverages, tobacco and related products"},
		{Code: "18000000", Description: "Clothing, footwear, luggage articles and accessories"},
		{Code: "22000000", Description: "Printed matter and related products"},
		{Code: "24000000", Description: "Chemical products"},
		{Code: "30000000", Description: "Office and computing machinery, equipment and supplies"},
		{Code: "31000000", Description: "Electrical machinery, apparatus, equipment and consumables"},
		{Code: "32000000", Description: "Radio, television, communication and related equipment"},
		{Code: "33000000", Description: "Medical equipments, pharmaceuticals and personal care products"},
		{Code: "34000000", Description: "Transport equipment and auxiliary products to transportation"},
		{Code: "35000000", Description: "Security, fire-fighting, police and defence equipment"},
		{Code: "37000000", Description: "Musical instruments, sport goods, games, toys, handicraft"},
		{Code: "38000000", Description: "Laboratory, optical and precision equipments"},
		{Code: "39000000", Description: "Furniture, furnishings, domestic appliances and cleaning products"},
		{Code: "41000000", Description: "Collected and purified water"},
		{Code: "42000000", Description: "Industrial machinery"},
		{Code: "43000000", Description: "Machinery for mining, quarrying, construction equipment"},
		{Code: "44000000", Description: "Construction structures and materials; auxiliary products"},
		{Code: "45000000", Description: "Construction work"},
		{Code: "48000000", Description: "Software package and information systems"},
		{Code: "50000000", Description: "Repair and maintenance services"},
		{Code: "51000000", Description: "Installation services (except software)"},
		{Code: "55000000", Description: "Hotel, restaurant and retail trade services"},
		{Code: "60000000", Description: "Transport services (excl. waste transport)"},
		{Code: "63000000", Description: "Supporting and auxiliary transport services; travel agencies"},
		{Code: "64000000", Description: "Postal and telecommunications services"},
		{Code: "65000000", Description: "Public utilities"},
		{Code: "66000000", Description: "Financial and insurance services"},
		{Code: "70000000", Description: "Real estate services"},
		{Code: "71000000", Description: "Architectural, construction, engineering and inspection services"},
		{Code: "72000000", Description: "IT services: consulting, software development, Internet and support"},
		{Code: "73000000", Description: "Research and development services and related consultancy services"},
		{Code: "75000000", Description: "Administration, defence and social security services"},
		{Code: "76000000", Description: "Services related to the oil and gas industry"},
		{Code: "77000000", Description: "Agricultural, forestry, horticultural, aquacultural and apicultural services"},
		{Code: "79000000", Description: "Business services: law, marketing, consulting, recruitment, printing and security"},
		{Code: "80000000", Description: "Education and training services"},
		{Code: "85000000", Description: "Health and social work services"},
		{Code: "90000000", Description: "Sewage, refuse, cleaning and environmental services"},
		{Code: "92000000", Description: "Recreational, cultural and sporting services"},
		{Code: "98000000", Description: "Other community, social and personal services"},
	}
}

// nutsCodes returns a starter set of NUTS level-0 codes
func nutsCodes() []models.NUTSCode {
	return []models.NUTSCode{
		{Code: "AT", Description: "Austria", Level: 0},
		{Code: "BE", Description: "Belgium", Level: 0},
		{Code: "BG", Description: "Bulgaria", Level: 0},
		{Code: "HR", Description: "Croatia", Level: 0},
		{Code: "CY", Description: "Cyprus", Level: 0},
		{Code: "CZ", Description: "Czechia", Level: 0},
		{Code: "DK", Description: "Denmark", Level: 0},
		{Code: "EE", Description: "Estonia", Level: 0},
		{Code: "FI", Description: "Finland", Level: 0},
		{Code: "FR", Description: "France", Level: 0},
		{Code: "DE", Description: "Germany", Level: 0},
		{Code: "EL", Description: "Greece", Level: 0},
		{Code: "HU", Description: "Hungary", Level: 0},
		{Code: "IE", Description: "Ireland", Level: 0},
		{Code: "IT", Description: "Italy", Level: 0},
		{Code: "LV", Description: "Latvia", Level: 0},
		{Code: "LT", Description: "Lithuania", Level: 0},
		{Code: "LU", Description: "Luxembourg", Level: 0},
		{Code: "MT", Description: "Malta", Level: 0},
		{Code: "NL", Description: "Netherlands", Level: 0},
		{Code: "PL", Description: "Poland", Level: 0},
		{Code: "PT", Description: "Portugal", Level: 0},
		{Code: "RO", Description: "Romania", Level: 0},
		{Code: "SK", Description: "Slovakia", Level: 0},
		{Code: "SI", Description: "Slovenia", Level: 0},
		{Code: "ES", Description: "Spain", Level: 0},
		{Code: "SE", Description: "Sweden", Level: 0},
	}
}
