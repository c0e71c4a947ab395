package models

type AccountType string

const (
	AccountTypeSavings    AccountType = "savings"
	AccountTypeChecking   AccountType = "checking"
	AccountTypeInvestment AccountType = "investment"
	AccountTypePayroll    AccountType = "payroll"
	AccountTypeCash       AccountType = "cash"
	AccountTypeOther      AccountType = "other"
)

type Currency string

const (
	CurrencyARS   Currency = "ARS"
	CurrencyUSD   Currency = "USD"
	CurrencyEUR   Currency = "EUR"
	CurrencyBRL   Currency = "BRL"
	CurrencyCLP   Currency = "CLP"
	CurrencyUYU   Currency = "UYU"
	CurrencyMXN   Currency = "MXN"
	CurrencyCOP   Currency = "COP"
	CurrencyPEN   Currency = "PEN"
	CurrencyOther Currency = "other"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
	AccountStatusBlocked  AccountStatus = "blocked"
)

// Account is a bank, investment or cash account held by the user.
type Account struct {
	Base

	Name          string        `gorm:"type:varchar(255)" json:"name"`
	Institution   string        `gorm:"type:varchar(255)" json:"institution"`
	AccountType   AccountType   `gorm:"type:varchar(20)" json:"accountType"`
	AccountNumber string        `gorm:"type:varchar(100)" json:"accountNumber,omitempty"`
	Currency      Currency      `gorm:"type:varchar(10)" json:"currency"`
	Balance       float64       `gorm:"type:decimal(15,2)" json:"balance"`
	IsNational    bool          `json:"isNational"`
	Owner         string        `gorm:"type:varchar(255)" json:"owner"`
	Status        AccountStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	Description   string        `gorm:"type:text" json:"description,omitempty"`
}

func (a *Account) Prepare() error {
	errs := FieldErrors{}
	requireText(errs, "name", a.Name)
	requireText(errs, "institution", a.Institution)
	requireText(errs, "owner", a.Owner)
	requireOneOf(errs, "accountType", a.AccountType,
		AccountTypeSavings, AccountTypeChecking, AccountTypeInvestment,
		AccountTypePayroll, AccountTypeCash, AccountTypeOther)
	requireOneOf(errs, "currency", a.Currency,
		CurrencyARS, CurrencyUSD, CurrencyEUR, CurrencyBRL, CurrencyCLP,
		CurrencyUYU, CurrencyMXN, CurrencyCOP, CurrencyPEN, CurrencyOther)
	if a.Status == "" {
		a.Status = AccountStatusActive
	}
	requireOneOf(errs, "status", a.Status, AccountStatusActive, AccountStatusInactive, AccountStatusBlocked)
	return errs.Err()
}
