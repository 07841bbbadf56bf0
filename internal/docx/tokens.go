package docx

// Tokens recognised in invoice templates
const (
	TokenCustomerName        = "{{CUSTOMER_NAME}}"
	TokenCustomerEmail       = "{{CUSTOMER_EMAIL}}"
	TokenPropertyAddress     = "{{PROPERTY_ADDRESS}}"
	TokenPropertyCity        = "{{PROPERTY_CITY}}"
	TokenPropertyState       = "{{PROPERTY_STATE}}"
	TokenPropertyZip         = "{{PROPERTY_ZIP}}"
	TokenPeriod              = "{{PERIOD}}"
	TokenPeriodDates         = "{{PERIOD_DATES}}"
	TokenAmount              = "{{AMOUNT}}"
	TokenInvoiceDate         = "{{INVOICE_DATE}}"
	TokenFeeType             = "{{FEE_TYPE}}"
	TokenFee2Type            = "{{FEE_2_TYPE}}"
	TokenFee2Amount          = "{{FEE_2_AMOUNT}}"
	TokenFee3Type            = "{{FEE_3_TYPE}}"
	TokenFee3Amount          = "{{FEE_3_AMOUNT}}"
	TokenAdditionalFee       = "{{ADDITIONAL_FEE}}"
	TokenAdditionalFeeAmount = "{{ADDITIONAL_FEE_AMOUNT}}"
	TokenTotalAmount         = "{{TOTAL_AMOUNT}}"
)

// AllTokens lists every token in a stable order
var AllTokens = []string{
	TokenCustomerName,
	TokenCustomerEmail,
	TokenPropertyAddress,
	TokenPropertyCity,
	TokenPropertyState,
	TokenPropertyZip,
	TokenPeriod,
	TokenPeriodDates,
	TokenAmount,
	TokenInvoiceDate,
	TokenFeeType,
	TokenFee2Type,
	TokenFee2Amount,
	TokenFee3Type,
	TokenFee3Amount,
	TokenAdditionalFee,
	TokenAdditionalFeeAmount,
	TokenTotalAmount,
}

// Section is a group of table rows that is present only when its fee is billed
type Section string

const (
	SectionFee2       Section = "fee_2"
	SectionFee3       Section = "fee_3"
	SectionAdditional Section = "additional_fee"
)

// sectionTokens maps each conditional section to the tokens that tag its rows
var sectionTokens = map[Section][]string{
	SectionFee2:       {TokenFee2Type, TokenFee2Amount},
	SectionFee3:       {TokenFee3Type, TokenFee3Amount},
	SectionAdditional: {TokenAdditionalFee, TokenAdditionalFeeAmount},
}

// SectionTokens returns the tokens that tag rows of s
func SectionTokens(s Section) []string {
	return sectionTokens[s]
}
