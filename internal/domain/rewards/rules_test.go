package rewards_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/rewards"
)

func TestNormalizeLines_FusionaDuplicados(t *testing.T) {
	out, err := rewards.NormalizeLines([]rewards.Line{
		{ProductID: "b", Quantity: 1},
		{ProductID: "a", Quantity: 2},
		{ProductID: "b", Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, []rewards.Line{{ProductID: "b", Quantity: 4}, {ProductID: "a", Quantity: 2}}, out)
}

func TestNormalizeLines_Invalidas(t *testing.T) {
	cases := map[string][]rewards.Line{
		"vacía":             nil,
		"cantidad cero":     {{ProductID: "a", Quantity: 0}},
		"cantidad negativa": {{ProductID: "a", Quantity: -1}},
		"sin producto":      {{ProductID: "", Quantity: 1}},
		"cantidad enorme":   {{ProductID: "a", Quantity: rewards.MaxAmount + 1}},
		"fusión desborda":   {{ProductID: "a", Quantity: rewards.MaxAmount}, {ProductID: "a", Quantity: 1}},
	}
	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := rewards.NormalizeLines(lines)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCheckAvailability_OrdenDeValidacion(t *testing.T) {
	line := rewards.Line{ProductID: "p1", Quantity: 2}

	err := rewards.CheckAvailability(nil, line)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	var pe *domain.ProductError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "p1", pe.ProductID)

	// Inactivo y sin stock: gana "no disponible" porque se valida primero.
	inactive := &entity.Product{ID: "p1", Name: "Taza", IsActive: false, Stock: 0}
	err = rewards.CheckAvailability(inactive, line)
	assert.ErrorIs(t, err, domain.ErrProductUnavailable)
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Taza", pe.ProductName)

	low := &entity.Product{ID: "p1", Name: "Taza", IsActive: true, Stock: 1}
	assert.ErrorIs(t, rewards.CheckAvailability(low, line), domain.ErrInsufficientStock)

	ok := &entity.Product{ID: "p1", Name: "Taza", IsActive: true, Stock: 2}
	assert.NoError(t, rewards.CheckAvailability(ok, line))
}

func TestCheckAffordable(t *testing.T) {
	assert.NoError(t, rewards.CheckAffordable(60, 60))

	err := rewards.CheckAffordable(10, 30)
	require.ErrorIs(t, err, domain.ErrInsufficientPoints)
	var ipe *domain.InsufficientPointsError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, 10, ipe.UserPoints)
	assert.Equal(t, 30, ipe.RequiredPoints)
	assert.Equal(t, 20, ipe.Shortfall())
}

func TestOrderTotal(t *testing.T) {
	items := []*entity.OrderItem{
		{PointsCost: 30, Quantity: 2},
		{PointsCost: 15, Quantity: 1},
	}
	assert.Equal(t, 75, rewards.OrderTotal(items))
	assert.Equal(t, 0, rewards.OrderTotal(nil))
}

func TestAdjustmentType(t *testing.T) {
	assert.Equal(t, entity.TransactionTypeEarned, rewards.AdjustmentType(50))
	assert.Equal(t, entity.TransactionTypeAdjusted, rewards.AdjustmentType(-5))
	assert.Equal(t, entity.TransactionTypeAdjusted, rewards.AdjustmentType(0))
}

func TestLineSubtotal_Limites(t *testing.T) {
	sub, err := rewards.LineSubtotal(30, 2)
	require.NoError(t, err)
	assert.Equal(t, 60, sub)

	sub, err = rewards.LineSubtotal(rewards.MaxAmount, 1)
	require.NoError(t, err)
	assert.Equal(t, rewards.MaxAmount, sub)

	cases := map[string][2]int{
		"producto desborda": {rewards.MaxAmount/2 + 1, 2},
		"costo 2^62+1 x4":   {1<<62 + 1, 4},
		"costo 2^62 x3":     {1 << 62, 3},
		"costo cero":        {0, 1},
		"cantidad negativa": {10, -1},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := rewards.LineSubtotal(c[0], c[1])
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAddLine_TotalNoDesborda(t *testing.T) {
	total, err := rewards.AddLine(0, 30, 2)
	require.NoError(t, err)
	total, err = rewards.AddLine(total, 15, 1)
	require.NoError(t, err)
	assert.Equal(t, 75, total)

	_, err = rewards.AddLine(rewards.MaxAmount-10, 11, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddAmounts(t *testing.T) {
	sum, err := rewards.AddAmounts(100, -30)
	require.NoError(t, err)
	assert.Equal(t, 70, sum)

	_, err = rewards.AddAmounts(rewards.MaxAmount, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = rewards.AddAmounts(-rewards.MaxAmount, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = rewards.AddAmounts(1<<62, 1<<62)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
