package invoice

// Condition condición de venta.
type Condition string

const (
	ConditionCash   Condition = "contado"
	ConditionCredit Condition = "credito"
)

// TransactionType tipo de movimiento.
type TransactionType string

const (
	TransactionIncome  TransactionType = "ingreso"
	TransactionExpense TransactionType = "egreso"
)

// DocumentType tipo de comprobante.
type DocumentType string

const (
	DocumentInvoice DocumentType = "factura"
	DocumentReceipt DocumentType = "recibo"
)

// DateLayout formato de fecha de la cabecera (input type=date).
const DateLayout = "2006-01-02"

// Header cabecera de la factura. El Invoice Store asigna la identidad al crearla.
type Header struct {
	Customer        string
	RUC             string
	Email           string
	Condition       Condition
	TransactionType TransactionType
	DocumentType    DocumentType
	DocumentNumber  string
	Date            string
}

func (c Condition) valid() bool {
	return c == ConditionCash || c == ConditionCredit
}

func (t TransactionType) valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

func (t DocumentType) valid() bool {
	return t == DocumentInvoice || t == DocumentReceipt
}
