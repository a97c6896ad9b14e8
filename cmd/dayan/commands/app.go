package commands

import (
	"context"
	"fmt"

	"github.com/wonny/dayan/internal/contracts"
	"github.com/wonny/dayan/internal/journal"
	"github.com/wonny/dayan/internal/lunarpath"
	"github.com/wonny/dayan/internal/report"
	"github.com/wonny/dayan/pkg/config"
	"github.com/wonny/dayan/pkg/database"
	"github.com/wonny/dayan/pkg/logger"
)

// app holds what every command needs
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	engine *report.Engine
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)
	engine := newEngine(cfg)

	log.WithFields(map[string]interface{}{
		"site":       cfg.Site.Name,
		"timezone":   engine.Location().String(),
		"forecaster": engine.ForecasterName(),
	}).Debug("Engine ready")
	return &app{cfg: cfg, log: log, engine: engine}, nil
}

// newEngine builds the engine with the default adapters for the configured site
func newEngine(cfg *config.Config) *report.Engine {
	return report.New(report.Options{
		Forecaster: lunarpath.New(cfg.Engine.EclipseForecaster),
		Site: contracts.Site{
			Name:      cfg.Site.Name,
			Latitude:  cfg.Site.Latitude,
			Longitude: cfg.Site.Longitude,
		},
		Timezone: cfg.Site.Timezone,
	})
}

// journalStack is the opened journal: store, publisher and recorder
type journalStack struct {
	db        *database.DB
	store     *journal.Repository
	publisher journal.Publisher
	recorder  *journal.Recorder
}

// openJournal connects to Postgres, applies the schema and wires the
// Kafka publisher when brokers are configured
func (a *app) openJournal(ctx context.Context) (*journalStack, error) {
	db, err := database.New(ctx, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.Migrate(ctx, journal.Schema...); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}

	var publisher journal.Publisher = journal.NopPublisher{}
	if a.cfg.KafkaEnabled() {
		publisher = journal.NewKafkaPublisher(a.cfg.Kafka.Brokers, a.cfg.Kafka.Topic)
		a.log.WithFields(map[string]interface{}{
			"brokers": a.cfg.Kafka.Brokers,
			"topic":   a.cfg.Kafka.Topic,
		}).Info("Journal publishing to Kafka")
	}

	store := journal.NewRepository(db.Pool, a.engine.Location())
	return &journalStack{
		db:        db,
		store:     store,
		publisher: publisher,
		recorder:  journal.NewRecorder(a.engine, store, publisher, a.log),
	}, nil
}

func (j *journalStack) Close() {
	if j == nil {
		return
	}
	_ = j.publisher.Close()
	j.db.Close()
}
