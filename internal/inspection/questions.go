package inspection

import (
	"context"
	"log"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"VroDaptar_InspectionBackend/internal/models"
	"VroDaptar_InspectionBackend/internal/sheets"
)

const masterQuestionKey = "master"

// QuestionCatalog caches Master_Q for ttl. The fallback list is never cached,
// so a recovered sheet is picked up on the next call.
type QuestionCatalog struct {
	store *sheets.Store
	cache *expirable.LRU[string, []models.Question]
}

func NewQuestionCatalog(store *sheets.Store, ttl time.Duration) *QuestionCatalog {
	c := &QuestionCatalog{store: store}
	if ttl > 0 {
		c.cache = expirable.NewLRU[string, []models.Question](1, nil, ttl)
	}
	return c
}

// Load returns the master questions, or FallbackQuestions when the sheet is
// empty or unreadable. fellBack reports the latter.
func (c *QuestionCatalog) Load(ctx context.Context) (questions []models.Question, fellBack bool) {
	if c.cache != nil {
		if qs, ok := c.cache.Get(masterQuestionKey); ok {
			return qs, false
		}
	}

	records, err := c.store.ReadRange(ctx, models.MasterQuestionRange)
	if err != nil {
		log.Printf("QuestionCatalog.Load(): using fallback questions: %v", err)
		return fallbackQuestions(), true
	}

	for _, rec := range records {
		q := models.QuestionFromRecord(rec)
		if q.ID == "" {
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		log.Printf("QuestionCatalog.Load(): %s is empty, using fallback questions", models.MasterQuestionRange)
		return fallbackQuestions(), true
	}

	if c.cache != nil {
		c.cache.Add(masterQuestionKey, questions)
	}
	return questions, false
}

func (c *QuestionCatalog) Invalidate() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

func fallbackQuestions() []models.Question {
	return append([]models.Question(nil), models.FallbackQuestions...)
}
