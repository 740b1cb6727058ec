package economy

// JobInfo describes one job and its pay band.
type JobInfo struct {
	Name        string
	MinPay      int64
	MaxPay      int64
	RequiredEdu string // credential item id, empty if none
}

// Jobs is the fixed job catalog, keyed by job id.
var Jobs = map[string]JobInfo{
	"intern":     {Name: "Intern", MinPay: 100, MaxPay: 300},
	"cashier":    {Name: "Cashier", MinPay: 150, MaxPay: 400},
	"programmer": {Name: "Programmer", MinPay: 500, MaxPay: 1500, RequiredEdu: "diploma_cs"},
	"doctor":     {Name: "Doctor", MinPay: 1000, MaxPay: 3000, RequiredEdu: "degree_medical"},
	"lawyer":     {Name: "Lawyer", MinPay: 800, MaxPay: 2500, RequiredEdu: "degree_law"},
	"ceo":        {Name: "CEO", MinPay: 2000, MaxPay: 5000, RequiredEdu: "degree_business"},
}

// EducationInfo describes one education program.
type EducationInfo struct {
	Name        string
	Cost        int64
	SuccessRate int // enrollment success chance, percent
}

// Education is the fixed program catalog, keyed by credential item id.
var Education = map[string]EducationInfo{
	"diploma_cs":       {Name: "Computer Science Diploma", Cost: 5000, SuccessRate: 70},
	"diploma_business": {Name: "Business Diploma", Cost: 5000, SuccessRate: 75},
	"degree_medical":   {Name: "Medical Degree", Cost: 20000, SuccessRate: 60},
	"degree_law":       {Name: "Law Degree", Cost: 20000, SuccessRate: 65},
	"degree_business":  {Name: "MBA", Cost: 20000, SuccessRate: 70},
}

// CatchInfo is one possible fishing catch.
type CatchInfo struct {
	Item   string
	Weight int // relative draw weight
}

// Catches is the fishing loot table. Weights are relative, not percentages.
var Catches = []CatchInfo{
	{Item: "fish", Weight: 60},
	{Item: "trout", Weight: 30},
	{Item: "salmon", Weight: 10},
}

// ItemValues is the sell price for items without a shop listing.
var ItemValues = map[string]int64{
	"fish":   25,
	"trout":  50,
	"salmon": 120,
}

// DefaultItemValue applies to items not in ItemValues.
const DefaultItemValue = 100
