package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/ports/out"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Ожидаемая схема (двойная бронь исключается на уровне БД):
//
//	CREATE TABLE availability_rule (
//	    id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
//	    day_of_week   int  NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
//	    start_time    text NOT NULL,
//	    end_time      text NOT NULL,
//	    is_active     boolean NOT NULL DEFAULT true,
//	    schedule_type text NOT NULL CHECK (schedule_type IN ('normal', 'exceptional'))
//	);
//
//	CREATE TABLE app_user (
//	    id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
//	    first_name    text NOT NULL,
//	    last_name     text NOT NULL,
//	    email         text NOT NULL UNIQUE,
//	    phone         text,
//	    password_hash text NOT NULL,
//	    created_at    timestamptz NOT NULL DEFAULT now()
//	);
//
//	CREATE TABLE appointment (
//	    id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
//	    client_id  uuid NOT NULL REFERENCES app_user (id),
//	    start_at   timestamptz NOT NULL,
//	    end_at     timestamptz NOT NULL,
//	    appt_type  text NOT NULL,
//	    status     text NOT NULL DEFAULT 'scheduled',
//	    notes      text NOT NULL DEFAULT '',
//	    created_at timestamptz NOT NULL DEFAULT now(),
//	    updated_at timestamptz NOT NULL DEFAULT now(),
//	    EXCLUDE USING gist (tstzrange(start_at, end_at) WITH &&) WHERE (status <> 'cancelled')
//	);
type PostgresAdapter struct {
	pool   *pgxpool.Pool
	logger out.LoggerPort
}

func NewPostgresAdapter(ctx context.Context, dsn string, logger out.LoggerPort) (*PostgresAdapter, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresAdapter{
		pool:   pool,
		logger: logger.WithModule("PostgresAdapter"),
	}, nil
}

func (a *PostgresAdapter) Close() {
	a.pool.Close()
}

func (a *PostgresAdapter) ListActiveRules(ctx context.Context) ([]domain.AvailabilityRule, error) {
	const q = `
		SELECT id, day_of_week, start_time, end_time, is_active, schedule_type
		FROM availability_rule
		WHERE is_active
		ORDER BY day_of_week, start_time;
	`
	rows, err := a.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.AvailabilityRule
	for rows.Next() {
		var (
			rule             domain.AvailabilityRule
			startStr, endStr string
			scheduleType     string
		)
		if err := rows.Scan(&rule.ID, &rule.DayOfWeek, &startStr, &endStr, &rule.IsActive, &scheduleType); err != nil {
			return nil, err
		}
		if rule.StartTime, err = json_types.ParseClockTime(startStr); err != nil {
			return nil, err
		}
		if rule.EndTime, err = json_types.ParseClockTime(endStr); err != nil {
			return nil, err
		}
		rule.ScheduleType = domain.ScheduleType(scheduleType)
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (a *PostgresAdapter) ListOverlappingAppointments(ctx context.Context, startDate, endDate time.Time) ([]domain.Appointment, error) {
	const q = `
		SELECT id, client_id, start_at, end_at, appt_type, status, notes, created_at, updated_at
		FROM appointment
		WHERE status <> 'cancelled'
		  AND start_at < $2
		  AND end_at > $1
		ORDER BY start_at;
	`
	rows, err := a.pool.Query(ctx, q, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, apt)
	}
	return appointments, rows.Err()
}

func (a *PostgresAdapter) CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	const q = `
		INSERT INTO appointment (client_id, start_at, end_at, appt_type, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at;
	`
	var (
		id                   uuid.UUID
		createdAt, updatedAt time.Time
	)
	err := a.pool.QueryRow(ctx, q,
		appointment.ClientID,
		appointment.StartTime.Date,
		appointment.EndTime.Date,
		string(appointment.AppointmentType),
		string(appointment.Status),
		appointment.Notes,
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		// exclusion_violation: запись пересеклась с конкурентной бронью
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23P01" {
			return nil, out.ErrConflict
		}
		return nil, err
	}

	appointment.ID = id
	appointment.CreatedAt = json_types.NewDateTime(createdAt)
	appointment.UpdatedAt = json_types.NewDateTime(updatedAt)

	a.logger.Debug("postgres.appointment.created", out.LogFields{
		"appointmentId": id,
	})

	return &appointment, nil
}

func (a *PostgresAdapter) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, phone, created_at
		FROM app_user
		WHERE id = $1;
	`
	return a.queryUser(ctx, q, id)
}

func (a *PostgresAdapter) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, phone, created_at
		FROM app_user
		WHERE email = $1;
	`
	return a.queryUser(ctx, q, normalizeEmail(email))
}

func (a *PostgresAdapter) CreateUser(ctx context.Context, input domain.NewUserInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO app_user (first_name, last_name, email, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
	`
	var (
		id        uuid.UUID
		createdAt time.Time
	)
	email := normalizeEmail(input.Email)
	err = a.pool.QueryRow(ctx, q, input.FirstName, input.LastName, email, input.Phone, string(hash)).Scan(&id, &createdAt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("postgres.user.created", out.LogFields{
		"userId": id,
	})

	return &domain.User{
		ID:        id,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Phone:     input.Phone,
		CreatedAt: json_types.NewDateTime(createdAt),
	}, nil
}

func (a *PostgresAdapter) queryUser(ctx context.Context, q string, arg interface{}) (*domain.User, error) {
	var (
		user      domain.User
		phone     *string
		createdAt time.Time
	)
	err := a.pool.QueryRow(ctx, q, arg).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &phone, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if phone != nil {
		user.Phone = *phone
	}
	user.CreatedAt = json_types.NewDateTime(createdAt)
	return &user, nil
}

func scanAppointment(rows pgx.Rows) (domain.Appointment, error) {
	var (
		apt              domain.Appointment
		startAt, endAt   time.Time
		apptType, status string
		created, updated time.Time
	)
	if err := rows.Scan(&apt.ID, &apt.ClientID, &startAt, &endAt, &apptType, &status, &apt.Notes, &created, &updated); err != nil {
		return domain.Appointment{}, err
	}
	apt.StartTime = json_types.NewDateTime(startAt)
	apt.EndTime = json_types.NewDateTime(endAt)
	apt.AppointmentType = domain.AppointmentTypeCode(apptType)
	apt.Status = domain.AppointmentStatus(status)
	apt.CreatedAt = json_types.NewDateTime(created)
	apt.UpdatedAt = json_types.NewDateTime(updated)
	return apt, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
