package marketplace

import (
	"github.com/shopspring/decimal"

	"github.com/Leganyst/myhaircut/internal/model"
)

// addReview добавляет отзыв и пересчитывает рейтинг мастера по всему набору
// его отзывов, включая только что добавленный.
func (st *State) addReview(r model.Review) upsertResult {
	st.Reviews = append(st.Reviews, r)

	rating, count := st.recomputeRating(r.ProviderID)
	return st.upsert(accountPatch{ID: r.ProviderID, Rating: &rating, ReviewCount: &count})
}

// recomputeRating пересчитывает среднее по отзывам мастера с округлением до 0.1.
func (st *State) recomputeRating(providerID string) (float64, int) {
	sum, count := int64(0), 0
	for _, r := range st.Reviews {
		if r.ProviderID == providerID {
			sum += int64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(count))).Round(1)
	return avg.InexactFloat64(), count
}

func (st *State) reviewsFor(providerID string) []model.Review {
	var out []model.Review
	for _, r := range st.Reviews {
		if r.ProviderID == providerID {
			out = append(out, r)
		}
	}
	return out
}
