// Command seed populates the database with realistic mock data for local
// development and demos. It expects the catalog tables (trial types,
// categories, entry types, action types, description actions) to be present;
// pass -catalog to install a default catalog into an empty database first.
//
// Usage:
//
//	seed -db juzgado.db -catalog -people 30 -trials 40 -actions 120
package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
	"github.com/jlozanoc/go-juzgado-backend/internal/mocks"
	"github.com/jlozanoc/go-juzgado-backend/internal/repo"
	"github.com/jlozanoc/go-juzgado-backend/internal/sysutil"
)

func main() {
	_ = godotenv.Load()

	var (
		flagDB      = flag.String("db", "", "SQLite database path (defaults to $DB_PATH or juzgado.db)")
		flagCatalog = flag.Bool("catalog", false, "install the default catalog when tables are empty")
		flagPeople  = flag.Int("people", 30, "people to generate")
		flagTrials  = flag.Int("trials", 40, "trials to generate")
		flagActions = flag.Int("actions", 120, "actions to generate")
		flagSeed    = flag.Int64("seed", 0, "random seed (0 = time-based)")
	)
	flag.Parse()

	sysutil.SetLogLevel(os.Getenv("LOG_LEVEL"))
	if sysutil.IsTruthy(os.Getenv("LOG_PRETTY")) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	dbPath := sysutil.FirstNonEmpty(*flagDB, os.Getenv("DB_PATH"), "juzgado.db")
	db, err := repo.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	ctx := context.Background()

	if *flagCatalog {
		if err := installDefaultCatalog(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("install catalog")
		}
	}

	types, err := repo.ListTypeTrials(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("load trial types")
	}
	if len(types) == 0 {
		log.Fatal().Msg("no trial types in the database; run with -catalog or create them first")
	}
	var categories []domain.Category
	for _, tt := range types {
		cats, err := repo.ListCategoriesByTypeTrial(ctx, db, tt.ID)
		if err != nil {
			log.Fatal().Err(err).Msg("load categories")
		}
		categories = append(categories, cats...)
	}
	entryTypes, err := repo.ListEntryTypes(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("load entry types")
	}
	if len(entryTypes) == 0 {
		log.Fatal().Msg("no entry types in the database; run with -catalog or create them first")
	}
	descriptions, err := repo.ListDescriptionActions(ctx, db, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("load description actions")
	}
	if len(descriptions) == 0 {
		log.Fatal().Msg("no description actions in the database; run with -catalog or create them first")
	}

	seed := *flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))
	log.Info().Int64("seed", seed).Str("db", dbPath).Msg("seeding")

	// People first; skip documents that already exist.
	people := mocks.People(r, *flagPeople)
	var insertedPeople []domain.Person
	for i := range people {
		if err := repo.CreatePerson(ctx, db, &people[i]); err != nil {
			log.Warn().Err(err).Str("document", people[i].Document).Msg("skipping person")
			continue
		}
		insertedPeople = append(insertedPeople, people[i])
	}
	if len(insertedPeople) < 2 {
		existing, err := repo.ListPeople(ctx, db)
		if err != nil || len(existing) < 2 {
			log.Fatal().Msg("need at least two people to generate trials")
		}
		insertedPeople = existing
	}
	log.Info().Int("count", len(insertedPeople)).Msg("people created")

	trials, err := mocks.Trials(r, insertedPeople, types, categories, entryTypes, *flagTrials, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("generate trials")
	}
	var insertedTrials []domain.Trial
	for i := range trials {
		if err := repo.CreateTrial(ctx, db, &trials[i]); err != nil {
			log.Warn().Err(err).Str("number", trials[i].Number).Msg("skipping trial")
			continue
		}
		insertedTrials = append(insertedTrials, trials[i])
	}
	log.Info().Int("count", len(insertedTrials)).Msg("trials created")

	// Hydrate relations so vocabulary filtering by family works.
	for i := range insertedTrials {
		full, err := repo.GetTrial(ctx, db, insertedTrials[i].ID)
		if err == nil {
			insertedTrials[i] = *full
		}
	}

	actions, err := mocks.Actions(r, insertedTrials, descriptions, *flagActions)
	if err != nil {
		log.Fatal().Err(err).Msg("generate actions")
	}
	created := 0
	for i := range actions {
		if err := repo.CreateAction(ctx, db, &actions[i]); err != nil {
			log.Warn().Err(err).Str("id", actions[i].ID).Msg("skipping action")
			continue
		}
		created++
	}
	log.Info().Int("count", created).Msg("actions created")
	log.Info().Msg("seed complete")
}

// installDefaultCatalog creates a baseline catalog when the tables are empty.
// Existing rows are left untouched.
func installDefaultCatalog(ctx context.Context, db *gorm.DB) error {
	types, err := repo.ListTypeTrials(ctx, db)
	if err != nil {
		return err
	}
	if len(types) > 0 {
		log.Info().Msg("catalog already present, skipping install")
		return nil
	}

	typeNames := []string{
		"Ordinario",
		"Ejecutivo",
		"Tutela",
		"Incidente de desacato",
		"Pago por consignación",
	}
	typeIDs := make(map[string]string, len(typeNames))
	for _, name := range typeNames {
		tt := domain.TypeTrial{ID: uuid.NewString(), Name: name}
		if err := db.WithContext(ctx).Create(&tt).Error; err != nil {
			return err
		}
		typeIDs[name] = tt.ID
	}

	categories := map[string][]string{
		"Ordinario":             {"Laboral", "Civil"},
		"Ejecutivo":             {"Cobro coactivo", "Hipotecario"},
		"Tutela":                {"Salud", "Vida", "Petición"},
		"Incidente de desacato": {"Salud", "Vida", "Petición"},
	}
	for typeName, names := range categories {
		for _, name := range names {
			cat := domain.Category{ID: uuid.NewString(), Description: name, TypeTrialID: typeIDs[typeName]}
			if err := db.WithContext(ctx).Create(&cat).Error; err != nil {
				return err
			}
		}
	}

	for _, name := range []string{"Demanda", "Oficio", "Memorial", "Exhorto"} {
		et := domain.EntryType{ID: uuid.NewString(), Description: name}
		if err := db.WithContext(ctx).Create(&et).Error; err != nil {
			return err
		}
	}

	typeActions := map[string]string{}
	for _, name := range []string{"Auto", "Sentencia", "Constancia secretarial"} {
		ta := domain.TypeAction{ID: uuid.NewString(), Description: name}
		if err := db.WithContext(ctx).Create(&ta).Error; err != nil {
			return err
		}
		typeActions[name] = ta.ID
	}

	tutelaID := typeIDs["Tutela"]
	ordinarioID := typeIDs["Ordinario"]
	descriptions := []domain.DescriptionAction{
		{ID: uuid.NewString(), Description: "Auto admisorio", TypeActionID: typeActions["Auto"]},
		{ID: uuid.NewString(), Description: "Auto que ordena requerir", TypeActionID: typeActions["Auto"]},
		{ID: uuid.NewString(), Description: "Auto interlocutorio", TypeActionID: typeActions["Auto"], TypeTrialID: &ordinarioID},
		{ID: uuid.NewString(), Description: "Sentencia de primera instancia", TypeActionID: typeActions["Sentencia"]},
		{ID: uuid.NewString(), Description: "Fallo de tutela", TypeActionID: typeActions["Sentencia"], TypeTrialID: &tutelaID},
		{ID: uuid.NewString(), Description: "Constancia de ejecutoria", TypeActionID: typeActions["Constancia secretarial"]},
	}
	for i := range descriptions {
		if err := repo.CreateDescriptionAction(ctx, db, &descriptions[i]); err != nil {
			return err
		}
	}

	log.Info().Msg("default catalog installed")
	return nil
}
