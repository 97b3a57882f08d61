// Package synergy detects portfolio compositions that reinforce each
// other and turns them into income multipliers. Rule predicates are CEL
// expressions over a portfolio snapshot, so new synergies can ship as
// data.
package synergy

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/graveworks/lichfolio/internal/investment"
)

// Rule describes one synergy: when Expr evaluates true against the
// portfolio snapshot, the synergy is active and contributes Multiplier.
type Rule struct {
	ID          string
	Name        string
	Description string
	Multiplier  float64
	Expr        string
}

// newEnv declares the snapshot variables rule expressions may use.
func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("class_counts", cel.MapType(cel.StringType, cel.IntType)),
		cel.Variable("financial_counts", cel.MapType(cel.StringType, cel.IntType)),
		cel.Variable("total_investments", cel.IntType),
		cel.Variable("distinct_classes", cel.IntType),
		cel.Variable("performing", cel.IntType),
		cel.Variable("defaulted", cel.IntType),
	)
}

// snapshot reduces a portfolio to the variables rules evaluate over.
// Every class and type key is present so expressions can index the maps
// directly.
func snapshot(p *investment.Portfolio) map[string]any {
	classCounts := make(map[string]int64)
	for class := investment.ClassProperty; class <= investment.ClassDark; class++ {
		classCounts[class.String()] = 0
	}
	financialCounts := make(map[string]int64)
	for ft := investment.CrownBond; ft <= investment.Usury; ft++ {
		financialCounts[ft.String()] = 0
	}
	var performing, defaulted int64
	distinct := int64(0)

	for _, inv := range p.Investments() {
		if classCounts[inv.AssetClass().String()] == 0 {
			distinct++
		}
		classCounts[inv.AssetClass().String()]++
		if fin, ok := inv.(*investment.Financial); ok {
			financialCounts[fin.FinancialType().String()]++
			switch fin.DebtStatus() {
			case investment.Performing:
				performing++
			case investment.Default:
				defaulted++
			}
		}
	}

	return map[string]any{
		"class_counts":      classCounts,
		"financial_counts":  financialCounts,
		"total_investments": int64(p.Count()),
		"distinct_classes":  distinct,
		"performing":        performing,
		"defaulted":         defaulted,
	}
}

// builtinRules is the standing catalog. Multipliers stack as a product.
func builtinRules() []Rule {
	return []Rule{
		{
			ID:          "diversified_holdings",
			Name:        "Diversified Holdings",
			Description: "Wealth spread across three or more asset classes weathers any storm.",
			Multiplier:  1.10,
			Expr:        "distinct_classes >= 3",
		},
		{
			ID:          "debt_barony",
			Name:        "Debt Barony",
			Description: "Three performing debt instruments make the creditor a power in the land.",
			Multiplier:  1.15,
			Expr:        "class_counts['financial'] >= 3 && defaulted == 0",
		},
		{
			ID:          "merchant_web",
			Name:        "Merchant Web",
			Description: "Merchant notes backed by trade routes keep the coin flowing both ways.",
			Multiplier:  1.10,
			Expr:        "financial_counts['merchant-note'] >= 2 && class_counts['trade'] >= 1",
		},
		{
			ID:          "dark_covenant",
			Name:        "Dark Covenant",
			Description: "Dark and magical holdings feed one another in ways mortals should not study.",
			Multiplier:  1.25,
			Expr:        "class_counts['dark'] >= 1 && class_counts['magical'] >= 1",
		},
		{
			ID:          "kingmaker",
			Name:        "Kingmaker",
			Description: "Political influence plus the crown's own debt makes thrones negotiable.",
			Multiplier:  1.30,
			Expr:        "class_counts['political'] >= 2 && financial_counts['crown-bond'] >= 1",
		},
	}
}

// compiledRule pairs a rule with its compiled program.
type compiledRule struct {
	rule Rule
	prog cel.Program
}

func compileRule(env *cel.Env, r Rule) (compiledRule, error) {
	ast, iss := env.Compile(r.Expr)
	if iss != nil && iss.Err() != nil {
		return compiledRule{}, fmt.Errorf("compile synergy rule %s: %w", r.ID, iss.Err())
	}
	if ast.OutputType().String() != cel.BoolType.String() {
		return compiledRule{}, fmt.Errorf("synergy rule %s: expression must be boolean, got %s", r.ID, ast.OutputType())
	}
	prog, err := env.Program(ast)
	if err != nil {
		return compiledRule{}, fmt.Errorf("program synergy rule %s: %w", r.ID, err)
	}
	return compiledRule{rule: r, prog: prog}, nil
}
