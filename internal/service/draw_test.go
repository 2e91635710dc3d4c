package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loddgo/loddgo-api/internal/domain"
)

func TestDrawService_DrawManualErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.addEvent("E", 10, domain.EventStatusLive)

	purchase, err := f.orders.Purchase(ctx, PurchaseInput{EventCode: "E", Qty: 2})
	require.NoError(t, err)

	_, err = f.draws.DrawManual(ctx, ManualDrawInput{EventCode: "NOPE", WinningTicketNumber: 1, WinningOrderID: purchase.Order.ID})
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = f.draws.DrawManual(ctx, ManualDrawInput{EventCode: "E", WinningTicketNumber: 3, WinningOrderID: purchase.Order.ID})
	assert.ErrorIs(t, err, ErrTicketNotFound)

	_, err = f.draws.DrawManual(ctx, ManualDrawInput{EventCode: "E", WinningTicketNumber: 1, WinningOrderID: "someone-else"})
	assert.ErrorIs(t, err, ErrOrderMismatch)
	assert.Empty(t, f.store.draws)

	draw, err := f.draws.DrawManual(ctx, ManualDrawInput{EventCode: "E", WinningTicketNumber: 1, WinningOrderID: purchase.Order.ID, Method: "stage"})
	require.NoError(t, err)
	assert.Equal(t, "stage", draw.Method)

	_, err = f.draws.DrawManual(ctx, ManualDrawInput{EventCode: "E", WinningTicketNumber: 1, WinningOrderID: purchase.Order.ID})
	assert.ErrorIs(t, err, ErrAlreadyDrawn)
}

func TestDrawService_DrawRandomWithoutReplacement(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.addEvent("E", 10, domain.EventStatusLive)

	_, err := f.draws.DrawRandom(ctx, "E")
	assert.ErrorIs(t, err, ErrNoTicketsAvailable, "event without tickets")

	_, err = f.orders.Purchase(ctx, PurchaseInput{EventCode: "E", Qty: 3})
	require.NoError(t, err)
	_, err = f.orders.Purchase(ctx, PurchaseInput{EventCode: "E", Qty: 4})
	require.NoError(t, err)

	const total = 7
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []int64
	)
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			draw, err := f.draws.DrawRandom(ctx, "E")
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, domain.DrawMethodRandom, draw.Method)
			mu.Lock()
			winners = append(winners, draw.WinningTicketNumber)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(winners, func(i, j int) bool { return winners[i] < winners[j] })
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, winners)

	_, err = f.draws.DrawRandom(ctx, "E")
	assert.ErrorIs(t, err, ErrNoTicketsAvailable)
}

func TestDrawService_RandomSkipsManuallyDrawnTicket(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.addEvent("E", 10, domain.EventStatusLive)

	purchase, err := f.orders.Purchase(ctx, PurchaseInput{EventCode: "E", Qty: 2})
	require.NoError(t, err)

	_, err = f.draws.DrawManual(ctx, ManualDrawInput{EventCode: "E", WinningTicketNumber: 1, WinningOrderID: purchase.Order.ID})
	require.NoError(t, err)

	draw, err := f.draws.DrawRandom(ctx, "E")
	require.NoError(t, err)
	assert.Equal(t, int64(2), draw.WinningTicketNumber)
	assert.Equal(t, purchase.Order.ID, draw.WinningOrderID)
}
