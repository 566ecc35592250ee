package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryResolutionIsTotal(t *testing.T) {
	for _, name := range DishNames() {
		dt, ok := DishTypeForName(name)
		require.True(t, ok, "dish name %q must map to a type", name)

		c, ok := CategoryForDish(dt)
		require.True(t, ok, "dish type %q must map to a category", dt)
		assert.NotEmpty(t, c)
	}
}

func TestCategoryForDish(t *testing.T) {
	tests := []struct {
		dish DishType
		want Category
	}{
		{DishYam, CategoryRiceYamPlantain},
		{DishPlantain, CategoryRiceYamPlantain},
		{DishJollof, CategoryRiceYamPlantain},
		{DishPlainRice, CategoryRiceYamPlantain},
		{DishWaakye, CategoryRiceYamPlantain},
		{DishKoko, CategoryKoko},
		{DishBanku, CategoryBankuFufu},
		{DishFufu, CategoryBankuFufu},
		{DishKokonte, CategoryBankuFufu},
		{DishKenkey, CategoryBankuFufu},
		{DishBread, CategoryBread},
		{DishBeans, CategoryGob3},
	}
	for _, tt := range tests {
		c, ok := CategoryForDish(tt.dish)
		require.True(t, ok)
		assert.Equal(t, tt.want, c, "dish %s", tt.dish)
	}
}

func TestDishTypeForName(t *testing.T) {
	dt, ok := DishTypeForName("Beans (Gob3)")
	require.True(t, ok)
	assert.Equal(t, DishBeans, dt)

	_, ok = DishTypeForName("Pizza")
	assert.False(t, ok)

	// Display names are exact, not case-folded.
	_, ok = DishTypeForName("jollof")
	assert.False(t, ok)
}

func TestPepperApplies(t *testing.T) {
	assert.True(t, PepperApplies(DishBanku))
	assert.True(t, PepperApplies(DishKokonte))
	assert.True(t, PepperApplies(DishKenkey))
	assert.False(t, PepperApplies(DishFufu))
	assert.False(t, PepperApplies(DishJollof))
}

func TestProteinApplies(t *testing.T) {
	assert.True(t, ProteinApplies(CategoryRiceYamPlantain))
	assert.True(t, ProteinApplies(CategoryBankuFufu))
	assert.True(t, ProteinApplies(CategoryGob3))
	assert.False(t, ProteinApplies(CategoryKoko))
	assert.False(t, ProteinApplies(CategoryBread))
}

func TestValidRegion(t *testing.T) {
	assert.True(t, ValidRegion("VOLTA"))
	assert.True(t, ValidRegion("GREATER ACCRA"))
	assert.False(t, ValidRegion("volta"))
	assert.False(t, ValidRegion(""))
}
