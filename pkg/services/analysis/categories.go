package analysis

import (
	"github.com/de-tools/deal-atlas/pkg/services/amortization"
	"github.com/de-tools/deal-atlas/pkg/services/format"
	"github.com/de-tools/deal-atlas/pkg/services/schema"
	"github.com/shopspring/decimal"
)

const (
	CategoryProperty  = "PROPERTY"
	CategoryPurchase  = "PURCHASE"
	CategoryFinancing = "FINANCING"
	CategoryIncome    = "INCOME"
	CategoryExpenses  = "EXPENSES"
	CategoryMisc      = "MISC"
	CategoryMetrics   = "METRICS"
	CategorySummary   = "SUMMARY"
)

// TaxEffects is the tax term of TOTAL_ROI. Taxes on rental income and capital
// gains are not modelled; the term stays in the formula as an explicit zero.
const TaxEffects = 0

const monthsPerYear = amortization.MonthsPerYear

// categoryDefs is the global evaluation order.
var categoryDefs = []categoryDef{
	{
		name:    CategoryProperty,
		heading: "IMMOBILE",
		sources: []string{"seller", "land registry"},
		display: []string{"ADDRESS", "LINK", "DESCRIPTION", "BEDROOMS", "BATHROOMS", "UNITS", "SQFTS"},
		eval:    (*evaluator).property,
	},
	{
		name:    CategoryPurchase,
		heading: "ACQUISTO",
		sources: []string{"seller", "inspection", "notary"},
		display: []string{
			"PURCHASE_PRICE", "IMPROVEMENT_COST", "CLOSING_COST", "NOTARY_FEES",
			"AGENCY_FEES", "REGISTRATION_TAX", "_TOTAL_COST",
		},
		eval: (*evaluator).purchase,
	},
	{
		name:    CategoryFinancing,
		heading: "FINANZIAMENTO",
		sources: []string{"bank", "mortgage broker"},
		display: []string{
			"_DOWNPAYMENT_RATE_FMT", "_DOWNPAYMENT", "_LOAN_AMOUNT", "LOAN_YEARS",
			"_APR_FMT", "_MONTHLY_PAYMENT", "_TOTAL_CASH_OUTLAY",
		},
		eval: (*evaluator).financing,
	},
	{
		name:    CategoryIncome,
		heading: "REDDITO",
		sources: []string{"pro-forma estimate", "agency", "property manager"},
		display: []string{
			"MONTHLY_RENT", "_VACANCY_RATE_FMT", "_NET_MONTHLY_RENT", "MONTHLY_OTHER_INCOME",
			"_GROSS_MONTHLY_INCOME", "_GROSS_ANNUAL_INCOME",
		},
		eval: (*evaluator).income,
	},
	{
		name:    CategoryExpenses,
		heading: "SPESE",
		sources: []string{"pro-forma estimate", "building administrator", "accountant"},
		display: []string{
			"_MANAGEMENT_RATE_FMT", "_MANAGEMENT_FEE_MONTHLY", "_PROPERTY_TAX_RATE_FMT",
			"_PROPERTY_TAX_MONTHLY", "MONTHLY_INSURANCE", "MONTHLY_HOA", "MONTHLY_MAINTENANCE",
			"MONTHLY_UTILITIES", "MONTHLY_ADVERTISING", "MONTHLY_LANDSCAPING",
			"_TOTAL_MONTHLY_EXPENSES", "_TOTAL_ANNUAL_EXPENSES",
		},
		eval: (*evaluator).expenses,
	},
	{
		name:    CategoryMisc,
		heading: "VARIE",
		sources: []string{"assumption"},
		display: []string{"_APPRECIATION_RATE_FMT", "_APPRECIATION_AMOUNT", "_EQUITY_GAIN_YEAR_1"},
		eval:    (*evaluator).misc,
	},
	{
		name:    CategoryMetrics,
		heading: "METRICHE",
		sources: []string{"calculation"},
		display: []string{
			"_PRICE_PER_SQM", "_COST_PER_UNIT", "_NOI", "_CASH_FLOW", "_CASH_FLOW_MONTHLY",
			"_DSCR_FMT", "_CAP_RATE_FMT", "_CASH_ROI_FMT", "_TOTAL_ROI_FMT",
		},
		eval: (*evaluator).metrics,
	},
	{
		name:    CategorySummary,
		heading: "SINTESI",
		display: []string{
			"RENT_TO_PRICE_RATIO", "PURCHASE_PRICE", "TOTAL_COST", "TOTAL_CASH_OUTLAY",
			"GROSS_ANNUAL_INCOME", "ANNUAL_EXPENSES", "NOI", "ANNUAL_MORTGAGE_PAYMENT",
			"ANNUAL_CASH_FLOW", "CAP_RATE", "CASH_ROI", "TOTAL_ROI",
		},
		eval: (*evaluator).summary,
	},
}

// monthlyExpenseKeys are the flat monthly expense lines, each annualized as-is.
var monthlyExpenseKeys = []string{
	"MONTHLY_INSURANCE",
	"MONTHLY_HOA",
	"MONTHLY_MAINTENANCE",
	"MONTHLY_UTILITIES",
	"MONTHLY_ADVERTISING",
	"MONTHLY_LANDSCAPING",
}

func (e *evaluator) property() {
	e.passText(schema.SectionProperty, "ADDRESS")
	e.passText(schema.SectionProperty, "LINK")
	e.passText(schema.SectionProperty, "DESCRIPTION")
	e.passAmount(schema.SectionProperty, "BEDROOMS")
	e.passAmount(schema.SectionProperty, "BATHROOMS")
	e.passAmount(schema.SectionProperty, "UNITS")
	e.passAmount(schema.SectionProperty, "SQFTS")
}

func (e *evaluator) purchase() {
	price := e.passAmount(schema.SectionPurchase, "PURCHASE_PRICE")
	improvement := e.passAmount(schema.SectionPurchase, "IMPROVEMENT_COST")
	closing := e.passAmount(schema.SectionPurchase, "CLOSING_COST")
	notary := e.passAmount(schema.SectionPurchase, "NOTARY_FEES")
	agency := e.passAmount(schema.SectionPurchase, "AGENCY_FEES")
	registration := e.passAmount(schema.SectionPurchase, "REGISTRATION_TAX")

	e.setAmount("_TOTAL_COST", sum(price, improvement, closing, notary, agency, registration))
}

func (e *evaluator) financing() {
	price := e.num(CategoryPurchase, "PURCHASE_PRICE")

	downRate := e.setNumber("DOWNPAYMENT_RATE",
		e.inputRate(schema.SectionFinancing, "MORTGAGE_LOAN_DOWNPAY_PERCENTAGE", 0, 1))
	e.set("_DOWNPAYMENT_RATE_FMT", Text(format.Percent(downRate)))
	downpayment := e.setRounded("_DOWNPAYMENT", ceilMul(price, downRate))
	loan := e.setRounded("_LOAN_AMOUNT", ceilMul(price, complement(downRate)))

	years := e.inputInt(schema.SectionFinancing, "MORTGAGE_LOAN_YRS")
	e.setInteger("LOAN_YEARS", int64(years))
	apr := e.setNumber("APR", e.inputFloat(schema.SectionFinancing, "MORTGAGE_LOAN_APR"))
	e.set("_APR_FMT", Text(format.Percent(apr)))

	var payment int64
	if e.err == nil {
		var err error
		payment, err = amortization.MonthlyPayment(loan, years, apr)
		e.fail(err)
	}
	monthly := e.setInteger("_MONTHLY_PAYMENT", payment)
	e.setAmount("_ANNUAL_PAYMENT", monthly*monthsPerYear)

	e.setAmount("_TOTAL_CASH_OUTLAY", sum(
		downpayment,
		e.num(CategoryPurchase, "IMPROVEMENT_COST"),
		e.num(CategoryPurchase, "CLOSING_COST"),
		e.num(CategoryPurchase, "NOTARY_FEES"),
		e.num(CategoryPurchase, "AGENCY_FEES"),
		e.num(CategoryPurchase, "REGISTRATION_TAX"),
	))
}

func (e *evaluator) income() {
	rent := e.passAmount(schema.SectionIncome, "MONTHLY_RENT")
	vacancy := e.setNumber("VACANCY_RATE", e.inputRate(schema.SectionIncome, "VACANCY_RATE", 0, 1))
	e.set("_VACANCY_RATE_FMT", Text(format.Percent(vacancy)))

	netRent := e.setRounded("_NET_MONTHLY_RENT", ceilMul(rent, complement(vacancy)))
	e.setAmount("_NET_ANNUAL_RENT", netRent*monthsPerYear)

	other := e.passAmount(schema.SectionIncome, "MONTHLY_OTHER_INCOME")
	e.setAmount("_OTHER_ANNUAL_INCOME", mul(other, monthsPerYear))

	grossMonthly := e.setAmount("_GROSS_MONTHLY_INCOME", sum(netRent, other))
	e.setAmount("_GROSS_ANNUAL_INCOME", mul(grossMonthly, monthsPerYear))
}

func (e *evaluator) expenses() {
	price := e.num(CategoryPurchase, "PURCHASE_PRICE")
	netRent := e.num(CategoryIncome, "_NET_MONTHLY_RENT")

	mgmtRate := e.setNumber("MANAGEMENT_RATE",
		e.inputRate(schema.SectionExpenses, "PROPERTY_MANAGEMENT_FEE_RATE", 0, 1))
	e.set("_MANAGEMENT_RATE_FMT", Text(format.Percent(mgmtRate)))
	e.setRounded("_MANAGEMENT_FEE_MONTHLY", ceilMul(mgmtRate, netRent))
	mgmtAnnual := e.setRounded("_MANAGEMENT_FEE_ANNUAL", ceilMul(mgmtRate, netRent, monthsPerYear))

	taxRate := e.setNumber("PROPERTY_TAX_RATE",
		e.inputRate(schema.SectionExpenses, "PROPERTY_TAX_RATE", 0, 1))
	e.set("_PROPERTY_TAX_RATE_FMT", Text(format.Percent(taxRate)))
	taxAnnual := e.setRounded("_PROPERTY_TAX_ANNUAL", ceilMul(taxRate, price))
	e.setRounded("_PROPERTY_TAX_MONTHLY", ceilDiv(taxAnnual, monthsPerYear))

	annualLines := []float64{mgmtAnnual, taxAnnual}
	for _, key := range monthlyExpenseKeys {
		monthly := e.passAmount(schema.SectionExpenses, key)
		annualKey := "_" + key[len("MONTHLY_"):] + "_ANNUAL"
		annualLines = append(annualLines, e.setAmount(annualKey, mul(monthly, monthsPerYear)))
	}

	totalAnnual := e.setRounded("_TOTAL_ANNUAL_EXPENSES", dec(sum(annualLines...)).Ceil())
	e.setRounded("_TOTAL_MONTHLY_EXPENSES", ceilDiv(totalAnnual, monthsPerYear))
}

func (e *evaluator) misc() {
	totalCost := e.num(CategoryPurchase, "_TOTAL_COST")
	loan := e.num(CategoryFinancing, "_LOAN_AMOUNT")
	years := int(e.num(CategoryFinancing, "LOAN_YEARS"))
	apr := e.num(CategoryFinancing, "APR")

	rate := e.setNumber("APPRECIATION_RATE", e.inputFloat(schema.SectionMisc, "PROPERTY_APPRECIATION_RATE"))
	e.set("_APPRECIATION_RATE_FMT", Text(format.Percent(rate)))
	e.setRounded("_APPRECIATION_AMOUNT", ceilMul(rate, totalCost))

	var balance int64
	if e.err == nil {
		var err error
		balance, err = amortization.RemainingBalance(loan, years, apr, 1)
		e.fail(err)
	}
	e.setInteger("_LOAN_BALANCE_YEAR_1", balance)
	e.setAmount("_EQUITY_GAIN_YEAR_1", loan-float64(balance))
}

func (e *evaluator) metrics() {
	totalCost := e.num(CategoryPurchase, "_TOTAL_COST")
	outlay := e.num(CategoryFinancing, "_TOTAL_CASH_OUTLAY")
	annualPayment := e.num(CategoryFinancing, "_ANNUAL_PAYMENT")
	sqm := e.num(CategoryProperty, "SQFTS")
	units := e.num(CategoryProperty, "UNITS")

	perSqm, perUnit := decimal.Zero, decimal.Zero
	if e.positive("PROPERTY.SQFTS", sqm) {
		perSqm = ceilDiv(totalCost, sqm)
	}
	if e.positive("PROPERTY.UNITS", units) {
		perUnit = ceilDiv(totalCost, units)
	}
	e.setRounded("_PRICE_PER_SQM", perSqm)
	e.setRounded("_COST_PER_UNIT", perUnit)

	noi := e.setAmount("_NOI",
		e.num(CategoryIncome, "_GROSS_ANNUAL_INCOME")-e.num(CategoryExpenses, "_TOTAL_ANNUAL_EXPENSES"))
	cashFlow := e.setAmount("_CASH_FLOW", noi-annualPayment)
	e.setRounded("_CASH_FLOW_MONTHLY", floorDiv(cashFlow, monthsPerYear))

	dscr := e.setNumber("_DSCR", e.ratio("DSCR", noi, annualPayment))
	e.set("_DSCR_FMT", Text(format.Percent(dscr)))

	capRate := e.setNumber("_CAP_RATE", e.ratio("CAP_RATE", noi, totalCost))
	e.set("_CAP_RATE_FMT", Text(format.Percent(capRate)))

	cashROI := e.setNumber("_CASH_ROI", e.ratio("CASH_ROI", cashFlow, outlay))
	e.set("_CASH_ROI_FMT", Text(format.Percent(cashROI)))

	taxEffects := e.setInteger("_TAX_EFFECTS", TaxEffects)
	totalReturn := sum(
		cashFlow,
		e.num(CategoryMisc, "_APPRECIATION_AMOUNT"),
		e.num(CategoryMisc, "_EQUITY_GAIN_YEAR_1"),
		taxEffects,
	)
	totalROI := e.setNumber("_TOTAL_ROI", e.ratio("TOTAL_ROI", totalReturn, outlay))
	e.set("_TOTAL_ROI_FMT", Text(format.Percent(totalROI)))
}

func (e *evaluator) summary() {
	rent := e.num(CategoryIncome, "MONTHLY_RENT")
	price := e.num(CategoryPurchase, "PURCHASE_PRICE")
	e.set("RENT_TO_PRICE_RATIO", Text(format.Percent(e.ratio("RENT_TO_PRICE_RATIO", rent, price))))

	e.set("PURCHASE_PRICE", e.get(CategoryPurchase, "PURCHASE_PRICE"))
	e.set("TOTAL_COST", e.get(CategoryPurchase, "_TOTAL_COST"))
	e.set("TOTAL_CASH_OUTLAY", e.get(CategoryFinancing, "_TOTAL_CASH_OUTLAY"))

	e.set("GROSS_ANNUAL_INCOME", Text(format.Credit(e.get(CategoryIncome, "_GROSS_ANNUAL_INCOME"))))
	e.set("ANNUAL_EXPENSES", Text(format.Debit(e.get(CategoryExpenses, "_TOTAL_ANNUAL_EXPENSES"))))
	e.set("NOI", e.get(CategoryMetrics, "_NOI"))
	e.set("ANNUAL_MORTGAGE_PAYMENT", Text(format.Debit(e.get(CategoryFinancing, "_ANNUAL_PAYMENT"))))
	e.set("ANNUAL_CASH_FLOW", e.get(CategoryMetrics, "_CASH_FLOW"))

	e.set("CAP_RATE", e.get(CategoryMetrics, "_CAP_RATE_FMT"))
	e.set("CASH_ROI", e.get(CategoryMetrics, "_CASH_ROI_FMT"))
	e.set("TOTAL_ROI", e.get(CategoryMetrics, "_TOTAL_ROI_FMT"))
}
