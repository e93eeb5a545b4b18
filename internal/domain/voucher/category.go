package voucher

import (
	"fmt"

	"github.com/fuelstation/backend/internal/domain/shared"
)

// Category groups vouchers by the counterparty side of the event
type Category string

const (
	CategorySupplier Category = "SUPPLIER"
	CategoryCustomer Category = "CUSTOMER"
	CategoryEmployee Category = "EMPLOYEE"
	CategoryOffice   Category = "OFFICE"
	CategoryGeneral  Category = "GENERAL"
)

// SubType refines a category into the concrete business event
type SubType string

const (
	SubTypeSupplierPayment SubType = "SUPPLIER_PAYMENT"
	SubTypeCustomerReceipt SubType = "CUSTOMER_RECEIPT"
	SubTypeCustomerRefund  SubType = "CUSTOMER_REFUND"
	SubTypeSalaryPayment   SubType = "SALARY_PAYMENT"
	SubTypeOfficePayment   SubType = "OFFICE_PAYMENT"
	SubTypeExpensePayment  SubType = "EXPENSE_PAYMENT"
	SubTypeOtherIncome     SubType = "OTHER_INCOME"
)

// pairings enumerates the valid (type, category, sub-type) combinations
var pairings = map[VoucherType]map[Category][]SubType{
	TypePayment: {
		CategorySupplier: {SubTypeSupplierPayment},
		CategoryCustomer: {SubTypeCustomerRefund},
		CategoryEmployee: {SubTypeSalaryPayment},
		CategoryOffice:   {SubTypeOfficePayment},
		CategoryGeneral:  {SubTypeExpensePayment},
	},
	TypeReceipt: {
		CategoryCustomer: {SubTypeCustomerReceipt},
		CategoryGeneral:  {SubTypeOtherIncome},
	},
}

// ValidatePairing checks that the category and sub-type are valid for the
// voucher type. The check runs before any mutation.
func ValidatePairing(voucherType VoucherType, category Category, subType SubType) error {
	byCategory, ok := pairings[voucherType]
	if !ok {
		return shared.NewDomainError("INVALID_VOUCHER_TYPE", "Voucher type must be PAYMENT or RECEIPT")
	}
	subTypes, ok := byCategory[category]
	if !ok {
		return shared.NewDomainError("INVALID_CATEGORY",
			fmt.Sprintf("Category %s is not valid for %s vouchers", category, voucherType))
	}
	for _, st := range subTypes {
		if st == subType {
			return nil
		}
	}
	return shared.NewDomainError("INVALID_SUB_TYPE",
		fmt.Sprintf("Sub-type %s is not valid for category %s", subType, category))
}
