// Package taxonomy defines the canonical dish enumeration, the dish to
// category mapping, and the fixed option lists used by both the wizard and
// the ingestion endpoint. The server and the wizard must resolve categories
// through this package only.
package taxonomy

// DishType is one of the 12 canonical dishes accepted by the system.
type DishType string

const (
	DishYam       DishType = "YAM"
	DishPlantain  DishType = "PLANTAIN"
	DishKenkey    DishType = "KENKEY"
	DishBanku     DishType = "BANKU"
	DishKokonte   DishType = "KOKONTE"
	DishFufu      DishType = "FUFU"
	DishJollof    DishType = "JOLLOF"
	DishPlainRice DishType = "PLAIN_RICE"
	DishWaakye    DishType = "WAAKYE"
	DishBread     DishType = "BREAD"
	DishKoko      DishType = "KOKO"
	DishBeans     DishType = "BEANS"
)

// Category is the metadata shape a dish type resolves to.
type Category string

const (
	CategoryRiceYamPlantain Category = "riceYamPlantain"
	CategoryKoko            Category = "koko"
	CategoryBankuFufu       Category = "bankuFufu"
	CategoryBread           Category = "bread"
	CategoryGob3            Category = "gob3"
)

// dishNames maps the display names used by the submission form to dish types.
var dishNames = map[string]DishType{
	"Yam":               DishYam,
	"Plantain (boiled)": DishPlantain,
	"Kenkey":            DishKenkey,
	"Banku":             DishBanku,
	"Kokonte":           DishKokonte,
	"Fufu":              DishFufu,
	"Jollof":            DishJollof,
	"Plain Rice":        DishPlainRice,
	"Waakye":            DishWaakye,
	"Bread":             DishBread,
	"Koko":              DishKoko,
	"Beans (Gob3)":      DishBeans,
}

var categories = map[DishType]Category{
	DishYam:       CategoryRiceYamPlantain,
	DishPlantain:  CategoryRiceYamPlantain,
	DishJollof:    CategoryRiceYamPlantain,
	DishPlainRice: CategoryRiceYamPlantain,
	DishWaakye:    CategoryRiceYamPlantain,
	DishKoko:      CategoryKoko,
	DishBanku:     CategoryBankuFufu,
	DishFufu:      CategoryBankuFufu,
	DishKokonte:   CategoryBankuFufu,
	DishKenkey:    CategoryBankuFufu,
	DishBread:     CategoryBread,
	DishBeans:     CategoryGob3,
}

// DishTypeForName maps a form dish name to its type.
func DishTypeForName(name string) (DishType, bool) {
	dt, ok := dishNames[name]
	return dt, ok
}

// CategoryForDish maps a dish type to its metadata category. The mapping is
// total over the enumeration above.
func CategoryForDish(dish DishType) (Category, bool) {
	c, ok := categories[dish]
	return c, ok
}

// DishNames returns all canonical form dish names.
func DishNames() []string {
	names := make([]string, 0, len(dishNames))
	for name := range dishNames {
		names = append(names, name)
	}
	return names
}

// DishTypes returns all canonical dish types.
func DishTypes() []DishType {
	types := make([]DishType, 0, len(categories))
	for dt := range categories {
		types = append(types, dt)
	}
	return types
}

// PepperApplies reports whether the pepper question applies to a dish.
// It applies to the banku family except fufu.
func PepperApplies(dish DishType) bool {
	switch dish {
	case DishBanku, DishKokonte, DishKenkey:
		return true
	}
	return false
}

// ProteinApplies reports whether the protein context question applies to a
// category. It applies to every category except koko and bread.
func ProteinApplies(c Category) bool {
	return c != CategoryKoko && c != CategoryBread
}

// Regions are the 16 regions of Ghana accepted in the location step.
var Regions = []string{
	"AHAFO", "ASHANTI", "BONO EAST", "BRONG AHAFO", "CENTRAL", "EASTERN",
	"GREATER ACCRA", "NORTH EAST", "NORTHERN", "OTI", "SAVANNAH",
	"UPPER EAST", "UPPER WEST", "VOLTA", "WESTERN", "WESTERN NORTH",
}

// FoodObtainedOptions are the accepted answers for where the food was
// obtained. Free text goes into the separate "other" field.
var FoodObtainedOptions = []string{
	"Home kitchen", "Chop bar", "Restaurant", "Street vendor", "School canteen",
}

// Option lists for the dish-specific metadata step.
var (
	StewOptions = []string{
		"Tomato", "Kontomire", "Garden Egg", "Vegetable", "Shito", "Gravy",
		"Cabbage", "No stew",
	}
	ExtraItemsOptions = []string{
		"Salad", "Spaghetti", "Gari", "Pepper", "Avocado", "fried plantain",
		"None",
	}
	KokoItemsOptions   = []string{"Milk", "Groundnuts", "None"}
	SoupContextOptions = []string{
		"Light Soup", "Groundnut Soup", "Palm Nut Soup", "Okro Soup/Stew",
		"Ayoyo", "Okro", "Ebunu Ebunu", "None",
	}
	PepperOptions    = []string{"Red Pepper", "Green Pepper", "Shito"}
	BreadTypeOptions = []string{
		"Sugar Bread", "Tea Bread", "Wheat Bread", "Brown Bread", "Cake Bread",
		"Coconut Bread",
	}
	BreadServedWithOptions = []string{"Jam", "Butter", "Mangerine", "None"}
	Gob3ServedWithOptions  = []string{"Fried Plantain", "Fried Yam", "Salad", "Rice", "None"}
	ProteinOptions         = []string{
		"Fish", "Chicken", "Turkey", "Beef", "Goat Meat", "Boiled Egg",
		"Friend Egg", "Sausage", "Gizzards", "Cow meat", "Pork", "Snail",
		"Shrimp", "Wele", "None",
	}
)

// ValidRegion reports whether region is one of the 16 accepted regions.
func ValidRegion(region string) bool {
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}
