package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tripweaver/internal/domain/model"
)

// stubCandidateSource テスト用の候補ソース。呼び出し回数を記録する
type stubCandidateSource struct {
	results []model.POICandidate
	err     error
	calls   int
}

func (s *stubCandidateSource) SearchCandidates(ctx context.Context, query CandidateQuery) ([]model.POICandidate, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return append([]model.POICandidate(nil), s.results...), nil
}

func makeCandidate(id, name string, rating float64) model.POICandidate {
	return model.POICandidate{ID: id, Name: name, Category: "cafe", Rating: &rating}
}

func TestCompositePOISource_ローカルで足りる場合は外部を呼ばない(t *testing.T) {
	local := &stubCandidateSource{results: []model.POICandidate{
		makeCandidate("p1", "カフェA", 4.5),
		makeCandidate("p2", "カフェB", 4.2),
		makeCandidate("p3", "カフェC", 4.0),
	}}
	external := &stubCandidateSource{results: []model.POICandidate{
		makeCandidate("p4", "カフェD", 3.8),
	}}

	source := NewCompositePOISource(local, external)
	result, err := source.SearchCandidates(context.Background(), CandidateQuery{City: "Kyoto", Limit: 3})

	assert.NoError(t, err)
	assert.Len(t, result, 3)
	assert.Equal(t, 0, external.calls, "ローカルで足りる場合、外部検索は一切呼ばれない")
}

func TestCompositePOISource_外部が失敗してもローカルの結果で続行する(t *testing.T) {
	local := &stubCandidateSource{results: []model.POICandidate{
		makeCandidate("p1", "カフェA", 4.5),
	}}
	external := &stubCandidateSource{err: model.NewUpstreamError("google_places", errors.New("timeout"))}

	source := NewCompositePOISource(local, external)
	result, err := source.SearchCandidates(context.Background(), CandidateQuery{City: "Kyoto", Limit: 3})

	assert.NoError(t, err, "外部検索の失敗はエラーとして伝播しない")
	assert.Len(t, result, 1)
	assert.Equal(t, "p1", result[0].ID)
	assert.Equal(t, 1, external.calls)
}

func TestCompositePOISource_ID重複はローカル側が残る(t *testing.T) {
	localRating := 4.5
	externalRating := 3.0
	local := &stubCandidateSource{results: []model.POICandidate{
		{ID: "shared", Name: "ローカル側", Rating: &localRating},
	}}
	external := &stubCandidateSource{results: []model.POICandidate{
		{ID: "shared", Name: "外部側", Rating: &externalRating},
		makeCandidate("p9", "カフェZ", 4.0),
	}}

	source := NewCompositePOISource(local, external)
	result, err := source.SearchCandidates(context.Background(), CandidateQuery{City: "Kyoto", Limit: 3})

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "shared", result[0].ID)
	assert.Equal(t, "ローカル側", result[0].Name, "同一IDはローカル由来の候補が優先される")
	assert.Equal(t, "p9", result[1].ID)
}

func TestCompositePOISource_limitで切り詰める(t *testing.T) {
	local := &stubCandidateSource{results: []model.POICandidate{
		makeCandidate("p1", "カフェA", 4.5),
	}}
	external := &stubCandidateSource{results: []model.POICandidate{
		makeCandidate("p2", "カフェB", 4.2),
		makeCandidate("p3", "カフェC", 4.0),
		makeCandidate("p4", "カフェD", 3.8),
	}}

	source := NewCompositePOISource(local, external)
	result, err := source.SearchCandidates(context.Background(), CandidateQuery{City: "Kyoto", Limit: 2})

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "p1", result[0].ID, "ローカルの結果が先頭に来る")
}

func TestCompositePOISource_ローカルの失敗は伝播する(t *testing.T) {
	local := &stubCandidateSource{err: errors.New("接続エラー")}
	external := &stubCandidateSource{}

	source := NewCompositePOISource(local, external)
	_, err := source.SearchCandidates(context.Background(), CandidateQuery{City: "Kyoto", Limit: 3})

	assert.Error(t, err)
	assert.Equal(t, 0, external.calls)
}

func TestCompositePOISource_外部ソースなしでも動作する(t *testing.T) {
	local := &stubCandidateSource{results: []model.POICandidate{
		makeCandidate("p1", "カフェA", 4.5),
	}}

	source := NewCompositePOISource(local, nil)
	result, err := source.SearchCandidates(context.Background(), CandidateQuery{City: "Kyoto", Limit: 3})

	assert.NoError(t, err)
	assert.Len(t, result, 1)
}
