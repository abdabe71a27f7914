package liquidate

import (
	"context"
	"testing"

	"lever/core"
	"lever/internal/ltv"
	lendservice "lever/service/lend"
	poolservice "lever/service/pool"
	"lever/service/redeemer"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	collateralAsset = "btc"
	loanAsset       = "usd"
	symbol          = "btcusd"
)

type fakeMarketStore struct {
	markets map[string]*core.Market
}

func (s *fakeMarketStore) Create(ctx context.Context, market *core.Market) error {
	market.ID = uint64(len(s.markets) + 1)
	s.markets[market.Symbol] = market
	return nil
}

func (s *fakeMarketStore) Find(ctx context.Context, symbol string) (*core.Market, error) {
	if m, ok := s.markets[symbol]; ok {
		return m, nil
	}
	return &core.Market{}, nil
}

func (s *fakeMarketStore) All(ctx context.Context) ([]*core.Market, error) {
	var out []*core.Market
	for _, m := range s.markets {
		out = append(out, m)
	}
	return out, nil
}

type fakePositionStore struct {
	items map[string]*core.Position
}

func (s *fakePositionStore) key(userID, symbol string) string { return userID + ":" + symbol }

func (s *fakePositionStore) Save(ctx context.Context, p *core.Position) error {
	p.ID = uint64(len(s.items) + 1)
	s.items[s.key(p.UserID, p.Symbol)] = p
	return nil
}

func (s *fakePositionStore) Find(ctx context.Context, userID, symbol string) (*core.Position, error) {
	if p, ok := s.items[s.key(userID, symbol)]; ok {
		return p, nil
	}
	return &core.Position{}, nil
}

func (s *fakePositionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	var out []*core.Position
	for _, p := range s.items {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePositionStore) List(ctx context.Context, symbol string, fromID uint64, limit int) ([]*core.Position, error) {
	var out []*core.Position
	for _, p := range s.items {
		if p.Symbol == symbol && p.ID > fromID && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePositionStore) Update(ctx context.Context, p *core.Position, version int64) error {
	p.Version = version + 1
	s.items[s.key(p.UserID, p.Symbol)] = p
	return nil
}

type fakeBlock struct{ mark int64 }

func (s *fakeBlock) CurrentMark(ctx context.Context, market *core.Market) (int64, error) {
	return s.mark, nil
}

type fakeOracle struct {
	price decimal.Decimal
	err   error
}

func (s *fakeOracle) GetPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	if s.err != nil {
		return decimal.Zero, s.err
	}
	return s.price, nil
}

type ledger struct {
	balances map[string]decimal.Decimal
}

func newLedger() *ledger {
	return &ledger{balances: map[string]decimal.Decimal{}}
}

func (l *ledger) key(account, assetID string) string { return account + ":" + assetID }

func (l *ledger) set(account, assetID string, amount decimal.Decimal) {
	l.balances[l.key(account, assetID)] = amount
}

func (l *ledger) get(account, assetID string) decimal.Decimal {
	return l.balances[l.key(account, assetID)]
}

// fakeWallet is one owner account's view over a shared balance ledger.
type fakeWallet struct {
	owner string
	*ledger
}

func (w *fakeWallet) TransferIn(ctx context.Context, from, assetID string, amount decimal.Decimal) error {
	if w.get(from, assetID).LessThan(amount) {
		return core.ErrInsufficientLiquidity
	}
	w.set(from, assetID, w.get(from, assetID).Sub(amount))
	w.set(w.owner, assetID, w.get(w.owner, assetID).Add(amount))
	return nil
}

func (w *fakeWallet) TransferOut(ctx context.Context, to, assetID string, amount decimal.Decimal) error {
	if w.get(w.owner, assetID).LessThan(amount) {
		return core.ErrInsufficientLiquidity
	}
	w.set(w.owner, assetID, w.get(w.owner, assetID).Sub(amount))
	w.set(to, assetID, w.get(to, assetID).Add(amount))
	return nil
}

func (w *fakeWallet) Balance(ctx context.Context, assetID string) (decimal.Decimal, error) {
	return w.get(w.owner, assetID), nil
}

type fakePoolStore struct {
	pool   *core.Pool
	shares map[string]*core.PoolShare
	auth   map[string]bool
}

func (s *fakePoolStore) Save(ctx context.Context, pool *core.Pool) error {
	pool.ID = 1
	s.pool = pool
	return nil
}

func (s *fakePoolStore) Find(ctx context.Context) (*core.Pool, error) { return s.pool, nil }

func (s *fakePoolStore) Update(ctx context.Context, pool *core.Pool, version int64) error {
	pool.Version = version + 1
	s.pool = pool
	return nil
}

func (s *fakePoolStore) FindShare(ctx context.Context, userID string) (*core.PoolShare, error) {
	if share, ok := s.shares[userID]; ok {
		return share, nil
	}
	return &core.PoolShare{UserID: userID}, nil
}

func (s *fakePoolStore) SaveShare(ctx context.Context, share *core.PoolShare) error {
	s.shares[share.UserID] = share
	return nil
}

func (s *fakePoolStore) IsMarketAuthorized(ctx context.Context, marketSymbol string) (bool, error) {
	return s.auth[marketSymbol], nil
}

func (s *fakePoolStore) SetMarketStatus(ctx context.Context, marketSymbol string, enabled bool) error {
	s.auth[marketSymbol] = enabled
	return nil
}

type fakeLiquidationStore struct {
	rows []*core.Liquidation
}

func (s *fakeLiquidationStore) Create(ctx context.Context, liquidation *core.Liquidation) error {
	liquidation.ID = uint64(len(s.rows) + 1)
	s.rows = append(s.rows, liquidation)
	return nil
}

func (s *fakeLiquidationStore) Find(ctx context.Context, id uint64) (*core.Liquidation, bool, error) {
	for _, row := range s.rows {
		if row.ID == id {
			return row, true, nil
		}
	}
	return nil, false, nil
}

func (s *fakeLiquidationStore) List(ctx context.Context, symbol string, fromID uint64, limit int) ([]*core.Liquidation, error) {
	var out []*core.Liquidation
	for _, row := range s.rows {
		if row.ID > fromID && (symbol == "" || row.Symbol == symbol) {
			out = append(out, row)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type env struct {
	guard        *core.Guard
	positions    *fakePositionStore
	poolStore    *fakePoolStore
	liquidations *fakeLiquidationStore
	pool         core.IPoolService
	oracle       *fakeOracle
	block        *fakeBlock
	ledger       *ledger
	lend         core.ILendService
	liquidate    core.ILiquidateService
}

// newEnv wires a pool with 1000 idle, and alice holding 100 collateral
// against 49 of debt at price 1, one tick away from the health boundary.
func newEnv(t *testing.T, haircutBPS int64) *env {
	ctx := context.Background()

	e := &env{
		guard:        &core.Guard{},
		positions:    &fakePositionStore{items: map[string]*core.Position{}},
		poolStore:    &fakePoolStore{pool: &core.Pool{}, shares: map[string]*core.PoolShare{}, auth: map[string]bool{}},
		liquidations: &fakeLiquidationStore{},
		oracle:       &fakeOracle{price: decimal.NewFromInt(1)},
		block:        &fakeBlock{mark: 100},
		ledger:       newLedger(),
	}

	markets := &fakeMarketStore{markets: map[string]*core.Market{}}
	require.Nil(t, markets.Create(ctx, &core.Market{
		Symbol:           symbol,
		CollateralAsset:  collateralAsset,
		LoanAsset:        loanAsset,
		BorrowLTV:        5000,
		LiquidationLTV:   7500,
		RatePerPeriod:    500,
		LiquidationBonus: 1000,
		TimeBasis:        core.TimeBasisBlock,
	}))

	custodyWallet := &fakeWallet{owner: core.CustodyAccount, ledger: e.ledger}
	poolWallet := &fakeWallet{owner: core.PoolAccount, ledger: e.ledger}

	e.pool = poolservice.New(poolservice.Config{AssetID: loanAsset, BadDebtEnabled: true}, e.poolStore, poolWallet)
	e.lend = lendservice.New(e.guard, markets, e.positions, e.pool, e.oracle, e.block, custodyWallet)
	e.liquidate = New(e.guard, markets, e.positions, e.liquidations, e.pool, e.oracle, e.block, custodyWallet,
		redeemer.New(redeemer.Config{HaircutBPS: haircutBPS}, e.oracle))

	require.Nil(t, e.poolStore.SetMarketStatus(ctx, symbol, true))

	e.ledger.set("lp", loanAsset, decimal.NewFromInt(1000))
	_, err := e.pool.Deposit(ctx, "lp", decimal.NewFromInt(1000))
	require.Nil(t, err)

	e.ledger.set("alice", collateralAsset, decimal.NewFromInt(1000))
	_, err = e.lend.Deposit(ctx, "alice", symbol, decimal.NewFromInt(100))
	require.Nil(t, err)
	_, err = e.lend.Borrow(ctx, "alice", symbol, decimal.NewFromInt(49))
	require.Nil(t, err)

	return e
}

func TestLiquidateFull(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, 0)

	// 49 of debt against 65 of collateral value breaches the 75% threshold
	e.oracle.price = decimal.RequireFromString("0.65")
	e.ledger.set("bob", loanAsset, decimal.NewFromInt(49))

	result, err := e.liquidate.Liquidate(ctx, "bob", "alice", symbol, decimal.NewFromInt(49))
	require.Nil(t, err)

	assert.True(t, decimal.NewFromInt(49).Equal(result.DebtRepaid))
	assert.True(t, decimal.NewFromInt(49).Equal(result.PrincipalPortion))
	assert.True(t, result.InterestPortion.IsZero())
	assert.True(t, decimal.RequireFromString("82.92307691").Equal(result.CollateralSeized), "got %s", result.CollateralSeized)
	assert.True(t, decimal.RequireFromString("53.89999999").Equal(result.Recovered), "got %s", result.Recovered)
	assert.False(t, result.BadDebt)
	assert.True(t, ltv.MaxHealth.Equal(result.HealthAfter))

	// liquidator paid the debt and walked away with the bonus collateral
	assert.True(t, e.ledger.get("bob", loanAsset).IsZero())
	assert.True(t, result.CollateralSeized.Equal(e.ledger.get("bob", collateralAsset)))

	// pool is made whole
	assert.True(t, e.poolStore.pool.TotalBorrowedOut.IsZero())
	total, err := e.pool.TotalAssets(ctx)
	require.Nil(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(total))

	position, _ := e.positions.Find(ctx, "alice", symbol)
	assert.True(t, position.Principal.IsZero())
	assert.True(t, position.OriginalPrincipal.IsZero())
	assert.True(t, decimal.RequireFromString("17.07692309").Equal(position.Collateral), "got %s", position.Collateral)

	rows, err := e.liquidations.List(ctx, symbol, 0, 10)
	require.Nil(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "bob", rows[0].Liquidator)
	assert.Equal(t, "alice", rows[0].UserID)
	assert.True(t, result.DebtRepaid.Equal(rows[0].DebtRepaid))
	assert.True(t, result.CollateralSeized.Equal(rows[0].CollateralSeized))
	assert.False(t, rows[0].BadDebt)
}

func TestLiquidateBadDebt(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, 0)

	// at 0.40 the whole 100 of collateral is worth 40 against 49 of debt
	e.oracle.price = decimal.RequireFromString("0.4")
	e.ledger.set("bob", loanAsset, decimal.NewFromInt(49))

	result, err := e.liquidate.Liquidate(ctx, "bob", "alice", symbol, decimal.NewFromInt(49))
	require.Nil(t, err)

	assert.True(t, result.BadDebt)
	// the bonus formula asks for more than the position holds: seize caps
	assert.True(t, decimal.NewFromInt(100).Equal(result.CollateralSeized))
	assert.True(t, decimal.NewFromInt(40).Equal(result.Recovered))

	// the shortfall is socialized across all pool shares
	assert.True(t, e.poolStore.pool.TotalBorrowedOut.IsZero())
	total, err := e.pool.TotalAssets(ctx)
	require.Nil(t, err)
	assert.True(t, decimal.NewFromInt(991).Equal(total), "got %s", total)

	// custody retains the part of the repayment the collateral did not cover
	assert.True(t, decimal.NewFromInt(9).Equal(e.ledger.get(core.CustodyAccount, loanAsset)))

	position, _ := e.positions.Find(ctx, "alice", symbol)
	assert.True(t, position.Principal.IsZero())
	assert.True(t, position.Collateral.IsZero())
}

func TestLiquidatePartialWithInterest(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, 0)

	// one period of interest: debt grows from 49 to 51.45
	e.block.mark++
	e.oracle.price = decimal.RequireFromString("0.65")
	e.ledger.set("bob", loanAsset, decimal.NewFromInt(21))

	result, err := e.liquidate.Liquidate(ctx, "bob", "alice", symbol, decimal.NewFromInt(21))
	require.Nil(t, err)

	assert.True(t, decimal.NewFromInt(21).Equal(result.DebtRepaid))
	assert.True(t, decimal.NewFromInt(20).Equal(result.PrincipalPortion), "got %s", result.PrincipalPortion)
	assert.True(t, decimal.NewFromInt(1).Equal(result.InterestPortion))
	assert.True(t, decimal.RequireFromString("35.53846153").Equal(result.CollateralSeized), "got %s", result.CollateralSeized)
	assert.False(t, result.BadDebt)

	// only the principal portion flows back to the pool; interest stays in custody
	assert.True(t, decimal.NewFromInt(29).Equal(e.poolStore.pool.TotalBorrowedOut))
	assert.True(t, decimal.NewFromInt(1).Equal(e.ledger.get(core.CustodyAccount, loanAsset)))

	// position survives a partial liquidation
	position, _ := e.positions.Find(ctx, "alice", symbol)
	assert.True(t, decimal.RequireFromString("30.45").Equal(position.Principal), "got %s", position.Principal)
	assert.True(t, decimal.NewFromInt(29).Equal(position.OriginalPrincipal))
}

func TestLiquidateHaircutShortfall(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, 2000)

	// seizure succeeds but a 20% settlement haircut eats the recovery
	e.oracle.price = decimal.RequireFromString("0.65")
	e.ledger.set("bob", loanAsset, decimal.NewFromInt(49))

	result, err := e.liquidate.Liquidate(ctx, "bob", "alice", symbol, decimal.NewFromInt(49))
	require.Nil(t, err)

	assert.True(t, result.BadDebt)
	assert.True(t, decimal.RequireFromString("43.11999999").Equal(result.Recovered), "got %s", result.Recovered)

	total, err := e.pool.TotalAssets(ctx)
	require.Nil(t, err)
	assert.True(t, total.LessThan(decimal.NewFromInt(1000)))
}

func TestLiquidateGuards(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, 0)

	_, err := e.liquidate.Liquidate(ctx, "bob", "alice", symbol, decimal.Zero)
	assert.Equal(t, core.ErrZeroAmount, err)

	_, err = e.liquidate.Liquidate(ctx, "alice", "alice", symbol, decimal.NewFromInt(1))
	assert.Equal(t, core.ErrUnauthorized, err)

	_, err = e.liquidate.Liquidate(ctx, "bob", "alice", "nosuch", decimal.NewFromInt(1))
	assert.Equal(t, core.ErrMarketNotFound, err)

	_, err = e.liquidate.Liquidate(ctx, "bob", "carol", symbol, decimal.NewFromInt(1))
	assert.Equal(t, core.ErrNotLiquidatable, err)

	// at price 1 the position is comfortably healthy
	_, err = e.liquidate.Liquidate(ctx, "bob", "alice", symbol, decimal.NewFromInt(1))
	assert.Equal(t, core.ErrNotLiquidatable, err)

	// oracle failures abort before any funds move
	e.oracle.price = decimal.RequireFromString("0.65")
	e.oracle.err = core.ErrStalePrice
	_, err = e.liquidate.Liquidate(ctx, "bob", "alice", symbol, decimal.NewFromInt(1))
	assert.Equal(t, core.ErrStalePrice, err)

	position, _ := e.positions.Find(ctx, "alice", symbol)
	assert.True(t, decimal.NewFromInt(49).Equal(position.Principal))

	// the guard is per market, shared with the lending path
	require.Nil(t, e.guard.Enter(symbol))
	_, err = e.liquidate.Liquidate(ctx, "bob", "alice", symbol, decimal.NewFromInt(1))
	assert.Equal(t, core.ErrOperationInProgress, err)
	e.guard.Exit(symbol)
}

func TestLiquidateDustRejected(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, 0)

	// 10 of collateral worth 20 against 49 of debt, well past the threshold
	position, _ := e.positions.Find(ctx, "alice", symbol)
	position.Collateral = decimal.NewFromInt(10)
	e.oracle.price = decimal.NewFromInt(2)

	e.ledger.set("bob", loanAsset, decimal.NewFromInt(1))

	// 0.00000001/2 truncates to zero collateral units, so nothing may move
	_, err := e.liquidate.Liquidate(ctx, "bob", "alice", symbol, decimal.RequireFromString("0.00000001"))
	assert.Equal(t, core.ErrZeroAmount, err)

	// a repay below a single representable unit is rejected the same way
	_, err = e.liquidate.Liquidate(ctx, "bob", "alice", symbol, decimal.RequireFromString("0.000000001"))
	assert.Equal(t, core.ErrZeroAmount, err)

	assert.True(t, decimal.NewFromInt(1).Equal(e.ledger.get("bob", loanAsset)))
	assert.True(t, decimal.NewFromInt(49).Equal(e.poolStore.pool.TotalBorrowedOut))

	position, _ = e.positions.Find(ctx, "alice", symbol)
	assert.True(t, decimal.NewFromInt(49).Equal(position.Principal))
	assert.True(t, decimal.NewFromInt(10).Equal(position.Collateral))

	rows, err := e.liquidations.List(ctx, symbol, 0, 10)
	require.Nil(t, err)
	assert.Len(t, rows, 0)

	// a non-dust repay on the same position still goes through
	e.ledger.set("bob", loanAsset, decimal.NewFromInt(10))
	result, err := e.liquidate.Liquidate(ctx, "bob", "alice", symbol, decimal.NewFromInt(10))
	require.Nil(t, err)
	assert.True(t, result.CollateralSeized.IsPositive())
}
