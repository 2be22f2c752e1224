package analyzer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/models"
)

func newsBatch(n int) []*models.NewsItem {
	items := make([]*models.NewsItem, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, &models.NewsItem{
			ID:      fmt.Sprintf("2025-12-06-%03d", i),
			Date:    "2025-12-06",
			Title:   fmt.Sprintf("新闻 %d", i),
			Content: "内容",
		})
	}
	return items
}

func TestAnalyzeBatchSkipsFailedItems(t *testing.T) {
	// Item 3 fails; the batch continues and keeps order
	stub := &stubCompletion{
		responses: []string{`{}`, `{}`, "", `{}`, `{}`},
		errs:      []error{nil, nil, errors.New("timeout"), nil, nil},
	}
	a := New(stub, common.GetLogger())

	analyses := a.AnalyzeBatch(context.Background(), newsBatch(5), 0)

	require.Len(t, analyses, 4)
	assert.Equal(t, "2025-12-06-001", analyses[0].NewsID)
	assert.Equal(t, "2025-12-06-002", analyses[1].NewsID)
	assert.Equal(t, "2025-12-06-004", analyses[2].NewsID)
	assert.Equal(t, "2025-12-06-005", analyses[3].NewsID)
	assert.Equal(t, 5, stub.calls)
}

func TestAnalyzeBatchAllFail(t *testing.T) {
	stub := &stubCompletion{
		errs: []error{errors.New("down"), errors.New("down"), errors.New("down")},
	}
	a := New(stub, common.GetLogger())

	analyses := a.AnalyzeBatch(context.Background(), newsBatch(3), 0)

	assert.Empty(t, analyses)
	assert.Equal(t, 3, stub.calls)
}

func TestAnalyzeBatchEmptyInput(t *testing.T) {
	a := New(&stubCompletion{}, common.GetLogger())

	analyses := a.AnalyzeBatch(context.Background(), nil, 0)
	assert.Empty(t, analyses)
}

func TestAnalyzeBatchStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &stubCompletion{responses: []string{`{}`, `{}`}}
	a := New(stub, common.GetLogger())

	analyses := a.AnalyzeBatch(ctx, newsBatch(2), 0)

	assert.Empty(t, analyses)
	assert.Equal(t, 0, stub.calls)
}
