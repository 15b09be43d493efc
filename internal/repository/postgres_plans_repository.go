package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/repository"
	"tripweaver/internal/infrastructure/database"
)

// PostgresPlansRepository パイプライン成果物をステージごとのJSONBカラムに保存する
// 1旅行につき1行（trip_idが主キー）。各ステージの保存は常に全置換で、
// トランザクション内でコミットする
type PostgresPlansRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresPlansRepository(client *database.PostgreSQLClient) repository.PlansRepository {
	return &PostgresPlansRepository{
		client: client,
	}
}

func (r *PostgresPlansRepository) SaveMacroPlan(ctx context.Context, tripID string, plan *model.MacroPlan, createdAt time.Time) error {
	return r.saveStage(ctx, tripID, "macro_plan", "macro_created_at", plan, createdAt)
}

func (r *PostgresPlansRepository) GetMacroPlan(ctx context.Context, tripID string) (*model.MacroPlan, time.Time, error) {
	var plan model.MacroPlan
	createdAt, err := r.getStage(ctx, tripID, "macro_plan", "macro_created_at", &plan, model.ErrMacroPlanNotFound)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &plan, createdAt, nil
}

func (r *PostgresPlansRepository) SavePOIPlan(ctx context.Context, tripID string, plan *model.POIPlan, createdAt time.Time) error {
	return r.saveStage(ctx, tripID, "poi_plan", "poi_created_at", plan, createdAt)
}

func (r *PostgresPlansRepository) GetPOIPlan(ctx context.Context, tripID string) (*model.POIPlan, time.Time, error) {
	var plan model.POIPlan
	createdAt, err := r.getStage(ctx, tripID, "poi_plan", "poi_created_at", &plan, model.ErrPOIPlanNotFound)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &plan, createdAt, nil
}

func (r *PostgresPlansRepository) SaveItinerary(ctx context.Context, tripID string, itinerary *model.Itinerary, createdAt time.Time) error {
	return r.saveStage(ctx, tripID, "itinerary", "itinerary_created_at", itinerary, createdAt)
}

func (r *PostgresPlansRepository) GetItinerary(ctx context.Context, tripID string) (*model.Itinerary, time.Time, error) {
	var itinerary model.Itinerary
	createdAt, err := r.getStage(ctx, tripID, "itinerary", "itinerary_created_at", &itinerary, model.ErrItineraryNotFound)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &itinerary, createdAt, nil
}

// saveStage 指定ステージのカラムを全置換で保存する
// カラム名は呼び出し元の定数のみが渡されるため、SQL組み立てに使用しても安全
func (r *PostgresPlansRepository) saveStage(ctx context.Context, tripID, planColumn, timeColumn string, plan interface{}, createdAt time.Time) error {
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("%s JSONマーシャルエラー: %w", planColumn, err)
	}

	tx, err := r.client.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始失敗: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO trip_plans (trip_id, %s, %s)
		VALUES ($1, $2::jsonb, $3)
		ON CONFLICT (trip_id) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s
	`, planColumn, timeColumn, planColumn, planColumn, timeColumn, timeColumn)

	if _, err := tx.ExecContext(ctx, query, tripID, string(planJSON), createdAt); err != nil {
		return fmt.Errorf("%sの保存失敗: %w", planColumn, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミット失敗: %w", err)
	}
	return nil
}

// getStage 指定ステージのカラムを取得する。行もしくはカラムが未保存の場合はnotFoundErrを返す
func (r *PostgresPlansRepository) getStage(ctx context.Context, tripID, planColumn, timeColumn string, dest interface{}, notFoundErr error) (time.Time, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM trip_plans WHERE trip_id = $1`, planColumn, timeColumn)
	row := r.client.DB.QueryRowContext(ctx, query, tripID)

	var planJSON sql.NullString
	var createdAt sql.NullTime
	if err := row.Scan(&planJSON, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, notFoundErr
		}
		return time.Time{}, fmt.Errorf("%sの取得失敗: %w", planColumn, err)
	}
	if !planJSON.Valid {
		return time.Time{}, notFoundErr
	}

	if err := json.Unmarshal([]byte(planJSON.String), dest); err != nil {
		return time.Time{}, fmt.Errorf("%s JSONBパースエラー: %w", planColumn, err)
	}
	return createdAt.Time, nil
}
