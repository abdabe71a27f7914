package block

import (
	"context"
	"time"

	"lever/core"
	"lever/internal/ltv"
)

type blockService struct{}

// New new block service
func New() core.IBlockService {
	return &blockService{}
}

func (s *blockService) CurrentMark(ctx context.Context, market *core.Market) (int64, error) {
	return ltv.Mark(market.TimeBasis, market.Genesis, market.SecondsPerBlock, time.Now())
}
