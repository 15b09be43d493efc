package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/repository"
)

// savedTripsCollection Firestoreのコレクション名
// ドキュメントのexpireAtフィールドにTTLポリシーを設定して自動削除する
const savedTripsCollection = "savedTrips"

// FirestoreSavedTripsRepository Firestoreを使用した旅程スナップショットの保存
type FirestoreSavedTripsRepository struct {
	client *firestore.Client
}

// NewFirestoreSavedTripsRepository 新しいFirestoreSavedTripsRepositoryインスタンスを作成
func NewFirestoreSavedTripsRepository(client *firestore.Client) repository.SavedTripsRepository {
	return &FirestoreSavedTripsRepository{
		client: client,
	}
}

// Save 旅程スナップショットを保存し、生成したsaved_trip_idを設定して返す
func (r *FirestoreSavedTripsRepository) Save(ctx context.Context, savedTrip *model.SavedTrip, ttlDays int) (*model.SavedTrip, error) {
	savedTripID := fmt.Sprintf("saved_%s", uuid.New().String())

	firestoreData := savedTrip.ToFirestoreSavedTrip(ttlDays)
	_, err := r.client.Collection(savedTripsCollection).Doc(savedTripID).Set(ctx, firestoreData)
	if err != nil {
		log.Printf("❌ 旅程スナップショットの保存に失敗: %s: %v", savedTripID, err)
		return nil, fmt.Errorf("旅程スナップショットの保存に失敗しました: %w", err)
	}

	log.Printf("✅ 旅程スナップショットを保存しました: %s (有効期限: %d日)", savedTripID, ttlDays)
	result := firestoreData.ToSavedTrip(savedTripID)
	return result, nil
}

// List 保存済み旅程を保存日時の新しい順に取得する
func (r *FirestoreSavedTripsRepository) List(ctx context.Context, limit int) ([]*model.SavedTrip, error) {
	query := r.client.Collection(savedTripsCollection).OrderBy("saved_at", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var trips []*model.SavedTrip
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("保存済み旅程の一覧取得に失敗しました: %w", err)
		}

		var firestoreData model.FirestoreSavedTrip
		if err := doc.DataTo(&firestoreData); err != nil {
			return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
		}
		trips = append(trips, firestoreData.ToSavedTrip(doc.Ref.ID))
	}
	return trips, nil
}

// GetByID 指定されたsaved_trip_idのスナップショットを取得する
func (r *FirestoreSavedTripsRepository) GetByID(ctx context.Context, savedTripID string) (*model.SavedTrip, error) {
	doc, err := r.client.Collection(savedTripsCollection).Doc(savedTripID).Get(ctx)
	if err != nil {
		if status := err.Error(); strings.Contains(status, "NotFound") || strings.Contains(status, "not found") {
			return nil, model.ErrSavedTripNotFound
		}
		return nil, fmt.Errorf("保存済み旅程の取得に失敗しました: %w", err)
	}

	var firestoreData model.FirestoreSavedTrip
	if err := doc.DataTo(&firestoreData); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}
	return firestoreData.ToSavedTrip(savedTripID), nil
}

// Delete 指定されたスナップショットを削除する
func (r *FirestoreSavedTripsRepository) Delete(ctx context.Context, savedTripID string) error {
	_, err := r.client.Collection(savedTripsCollection).Doc(savedTripID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("保存済み旅程の削除に失敗しました: %w", err)
	}
	log.Printf("✅ 旅程スナップショットを削除しました: %s", savedTripID)
	return nil
}

// ExistsForTrip 指定された旅行のスナップショットが既に存在するかチェックする
func (r *FirestoreSavedTripsRepository) ExistsForTrip(ctx context.Context, tripID string) (bool, error) {
	iter := r.client.Collection(savedTripsCollection).
		Where("trip_id", "==", tripID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("保存済み旅程の存在確認に失敗しました: %w", err)
	}
	return true, nil
}
