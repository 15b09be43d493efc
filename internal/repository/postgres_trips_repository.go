package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/repository"
	"tripweaver/internal/infrastructure/database"
)

type PostgresTripsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresTripsRepository(client *database.PostgreSQLClient) repository.TripsRepository {
	return &PostgresTripsRepository{
		client: client,
	}
}

// Create 旅行仕様を保存する
func (r *PostgresTripsRepository) Create(ctx context.Context, trip *model.TripSpec) error {
	interestsJSON, routineJSON, hotelJSON, err := marshalTripFields(trip)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO trips (id, city, start_date, end_date, num_travelers, pace, budget, interests, daily_routine, hotel_location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9::jsonb, $10::jsonb, $11, $12)
	`
	_, err = r.client.DB.ExecContext(ctx, query,
		trip.ID, trip.City, trip.StartDate, trip.EndDate, trip.NumTravelers,
		string(trip.Pace), string(trip.Budget), interestsJSON, routineJSON, hotelJSON,
		trip.CreatedAt, trip.UpdatedAt)
	if err != nil {
		return fmt.Errorf("旅行の作成失敗: %w", err)
	}
	return nil
}

// GetByID IDで旅行仕様を取得する。存在しない場合は model.ErrTripNotFound を返す
func (r *PostgresTripsRepository) GetByID(ctx context.Context, tripID string) (*model.TripSpec, error) {
	query := `
		SELECT id, city, start_date, end_date, num_travelers, pace, budget, interests, daily_routine, hotel_location, created_at, updated_at
		FROM trips WHERE id = $1
	`
	row := r.client.DB.QueryRowContext(ctx, query, tripID)

	var trip model.TripSpec
	var pace, budget string
	var interestsJSON, routineJSON sql.NullString
	var hotelJSON sql.NullString
	err := row.Scan(&trip.ID, &trip.City, &trip.StartDate, &trip.EndDate, &trip.NumTravelers,
		&pace, &budget, &interestsJSON, &routineJSON, &hotelJSON,
		&trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrTripNotFound
		}
		return nil, fmt.Errorf("旅行データの取得失敗: %w", err)
	}

	trip.Pace = model.PaceLevel(pace)
	trip.Budget = model.BudgetLevel(budget)
	if interestsJSON.Valid && interestsJSON.String != "" {
		if err := json.Unmarshal([]byte(interestsJSON.String), &trip.Interests); err != nil {
			return nil, fmt.Errorf("interests JSONBパースエラー: %w", err)
		}
	}
	if routineJSON.Valid && routineJSON.String != "" {
		if err := json.Unmarshal([]byte(routineJSON.String), &trip.DailyRoutine); err != nil {
			return nil, fmt.Errorf("daily_routine JSONBパースエラー: %w", err)
		}
	}
	if hotelJSON.Valid && hotelJSON.String != "" {
		if err := json.Unmarshal([]byte(hotelJSON.String), &trip.HotelLocation); err != nil {
			return nil, fmt.Errorf("hotel_location JSONBパースエラー: %w", err)
		}
	}
	return &trip, nil
}

// Update 旅行仕様を更新する。対象が存在しない場合は model.ErrTripNotFound を返す
func (r *PostgresTripsRepository) Update(ctx context.Context, trip *model.TripSpec) error {
	interestsJSON, routineJSON, hotelJSON, err := marshalTripFields(trip)
	if err != nil {
		return err
	}

	query := `
		UPDATE trips SET city = $2, start_date = $3, end_date = $4, num_travelers = $5,
			pace = $6, budget = $7, interests = $8::jsonb, daily_routine = $9::jsonb,
			hotel_location = $10::jsonb, updated_at = $11
		WHERE id = $1
	`
	result, err := r.client.DB.ExecContext(ctx, query,
		trip.ID, trip.City, trip.StartDate, trip.EndDate, trip.NumTravelers,
		string(trip.Pace), string(trip.Budget), interestsJSON, routineJSON, hotelJSON,
		trip.UpdatedAt)
	if err != nil {
		return fmt.Errorf("旅行の更新失敗: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認失敗: %w", err)
	}
	if affected == 0 {
		return model.ErrTripNotFound
	}
	return nil
}

// marshalTripFields JSONBカラム用のフィールドをシリアライズする
// hotel_locationが未設定の場合はNULLを書き込む
func marshalTripFields(trip *model.TripSpec) (interests, routine string, hotel interface{}, err error) {
	interestsBytes, err := json.Marshal(trip.Interests)
	if err != nil {
		return "", "", nil, fmt.Errorf("interests JSONマーシャルエラー: %w", err)
	}
	routineBytes, err := json.Marshal(trip.DailyRoutine)
	if err != nil {
		return "", "", nil, fmt.Errorf("daily_routine JSONマーシャルエラー: %w", err)
	}
	if trip.HotelLocation != nil {
		hotelBytes, err := json.Marshal(trip.HotelLocation)
		if err != nil {
			return "", "", nil, fmt.Errorf("hotel_location JSONマーシャルエラー: %w", err)
		}
		hotel = string(hotelBytes)
	}
	return string(interestsBytes), string(routineBytes), hotel, nil
}
