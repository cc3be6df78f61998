package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-adoption-platform/internal/config"
	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/appointments"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/shop"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/platform/logger"
	"pet-adoption-platform/internal/session"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = apperrors.New(apperrors.CodeNotFound, "not found")
	ErrIDRequired = apperrors.New(apperrors.CodeValidation, "id required")
	ErrExists     = apperrors.New(apperrors.CodeConflict, "already exists")
)

const pingTimeout = 3 * time.Second

// Store agrupa los repositorios sobre una conexión GORM compartida.
type Store struct {
	db *gorm.DB
}

// OpenPostgres abre el pool con pgx (database/sql) y monta GORM encima.
func OpenPostgres(ctx context.Context, cfg config.DBConfig, log logger.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}
	sqlDB, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}
	applyPoolSettings(sqlDB, cfg)

	s, err := open(ctx, postgres.New(postgres.Config{Conn: sqlDB}), log)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// OpenSQLite sirve para desarrollo local y tests.
func OpenSQLite(ctx context.Context, dsn string, log logger.Logger) (*Store, error) {
	return open(ctx, sqlite.Open(dsn), log)
}

func open(ctx context.Context, dialector gorm.Dialector, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormLog(log),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := conn.WithContext(ctx).AutoMigrate(
		&userRow{}, &sessionRow{}, &petRow{}, &requestRow{},
		&productRow{}, &cartLineRow{}, &appointmentRow{},
	); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("database connection established", map[string]any{"dialect": dialector.Name()})
	return &Store{db: conn}, nil
}

func applyPoolSettings(db *sql.DB, cfg config.DBConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

func (s *Store) Users() users.Repository               { return &userRepo{db: s.db} }
func (s *Store) Sessions() session.Store               { return &sessionRepo{db: s.db} }
func (s *Store) Pets() pets.Repository                 { return &petRepo{db: s.db} }
func (s *Store) Adoptions() adoptions.Repository       { return &adoptionRepo{db: s.db} }
func (s *Store) Products() shop.ProductRepository      { return &productRepo{db: s.db} }
func (s *Store) Carts() shop.CartRepository            { return &cartRepo{db: s.db} }
func (s *Store) Appointments() appointments.Repository { return &appointmentRepo{db: s.db} }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// dbErr traduce los errores de GORM a los del dominio.
func dbErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case apperrors.As(err) != nil:
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrExists
	}
	return apperrors.Wrap(apperrors.CodeDependency, err, "database error")
}
