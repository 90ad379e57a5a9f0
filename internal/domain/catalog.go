package domain

import "fmt"

// FieldSpec describes one worksheet field.
type FieldSpec struct {
	ID          string
	Label       string
	Placeholder string
	Description string
}

// CategorySpec describes one category and its fixed field set.
type CategorySpec struct {
	ID     Category
	Title  string
	Color  string // hex, used by the canvas renderer
	Fields []FieldSpec
}

var catalog = []CategorySpec{
	{
		ID:    CategoryKeyTrends,
		Title: "Key Trends",
		Color: "#eab308",
		Fields: []FieldSpec{
			{"regulatory", "Regulatory Trends", "Regulations, taxes, standards...", "Rules and regulations influencing the business model."},
			{"technology", "Technology Trends", "Emerging tech, digitization...", "Major technology trends that could threaten or improve your model."},
			{"societal", "Societal & Cultural Trends", "Social shifts, cultural changes...", "Major social trends that may influence buyer behavior."},
			{"socioeconomic", "Socioeconomic Trends", "Income distribution, education...", "Demographic and economic trends relevant to your market."},
		},
	},
	{
		ID:    CategoryMarketForces,
		Title: "Market Forces",
		Color: "#3b82f6",
		Fields: []FieldSpec{
			{"segments", "Market Segments", "Target groups, niches...", "The market segments you are targeting."},
			{"needs", "Needs & Demands", "Underserved needs, desires...", "What customers need and how well they are served."},
			{"issues", "Market Issues", "Costs, efficiency...", "Key issues driving the market landscape."},
			{"switchingCosts", "Switching Costs", "Lock-in effects, transfer costs...", "Elements preventing customers from switching to competitors."},
			{"revenue", "Revenue Attractiveness", "Margins, willingness to pay...", "Pricing power and revenue potential."},
		},
	},
	{
		ID:    CategoryIndustryForces,
		Title: "Industry Forces",
		Color: "#6366f1",
		Fields: []FieldSpec{
			{"competitors", "Competitors (Incumbents)", "Main rivals, their strengths...", "Who are the dominant players in your sector?"},
			{"newEntrants", "New Entrants (Insurgents)", "Startups, invading players...", "New players entering your space."},
			{"substitutes", "Substitute Products", "Alternatives, indirect competition...", "Products/services that could replace yours."},
			{"suppliers", "Suppliers & Value Chain", "Key partners, dependencies...", "Key actors in your value chain."},
			{"stakeholders", "Stakeholders", "Investors, lobby groups...", "Influential groups upon your organization."},
		},
	},
	{
		ID:    CategoryMacroEconomic,
		Title: "Macro-Economic Forces",
		Color: "#d97706",
		Fields: []FieldSpec{
			{"globalConditions", "Global Market Conditions", "GDP growth, sentiment...", "Overall economic health."},
			{"capitalMarkets", "Capital Markets", "Access to funds, interest rates...", "Availability of capital."},
			{"infrastructure", "Economic Infrastructure", "Transport, public services...", "Infrastructure needed to operate."},
			{"resources", "Commodities & Resources", "Raw materials, talent costs...", "Cost and availability of essential resources."},
		},
	},
}

// Categories returns the field catalog in display order.
func Categories() []CategorySpec {
	out := make([]CategorySpec, len(catalog))
	copy(out, catalog)
	return out
}

// CategoryByID looks up a category spec.
func CategoryByID(id Category) (CategorySpec, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return CategorySpec{}, false
}

// CategoryByIDMust is CategoryByID for IDs known at compile time.
func CategoryByIDMust(id Category) CategorySpec {
	c, ok := CategoryByID(id)
	if !ok {
		panic(fmt.Sprintf("unknown category %q", id))
	}
	return c
}

// FieldByID looks up a field spec within a category.
func FieldByID(c Category, field string) (FieldSpec, bool) {
	spec, ok := CategoryByID(c)
	if !ok {
		return FieldSpec{}, false
	}
	for _, f := range spec.Fields {
		if f.ID == field {
			return f, true
		}
	}
	return FieldSpec{}, false
}
