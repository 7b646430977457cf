package alert

import (
	"strconv"
	"sync/atomic"

	"github.com/segmentio/ksuid"
)

type IDGenerator interface {
	NewID() string
}

// KsuidGenerator hands out k-sortable ids, so ids also follow creation order.
type KsuidGenerator struct{}

func (KsuidGenerator) NewID() string {
	return ksuid.New().String()
}

// SequenceGenerator hands out "1", "2", "3"... and is safe for concurrent use.
type SequenceGenerator struct {
	n uint64
}

func (g *SequenceGenerator) NewID() string {
	return strconv.FormatUint(atomic.AddUint64(&g.n, 1), 10)
}
