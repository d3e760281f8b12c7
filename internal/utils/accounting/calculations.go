package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
)

// ValidateEntries checks the ledger poster preconditions: a non-empty line
// set, exactly one positive side per line, and total debits equal to total
// credits.
func ValidateEntries(entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("voucher must have at least one ledger entry")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, e := range entries {
		debitSet := e.Debit.IsPositive()
		creditSet := e.Credit.IsPositive()
		if debitSet == creditSet {
			return fmt.Errorf("entry for account %s must have exactly one of debit/credit positive", e.AccountID)
		}
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("entry for account %s has a negative amount", e.AccountID)
		}
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("ledger entries do not balance: debits %s, credits %s", debits.String(), credits.String())
	}
	return nil
}

// SignedAmount applies the account's balance convention to one debit/credit
// pair. Suppliers carry credit-natured balances (amount owed to them); every
// other account type is debit-natured.
func SignedAmount(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if accountType == domain.Supplier {
		return credit.Sub(debit)
	}
	return debit.Sub(credit)
}

// OutstandingBalance nets total debits against total credits under the
// account's convention.
func OutstandingBalance(accountType domain.AccountType, totalDebit, totalCredit decimal.Decimal) decimal.Decimal {
	return SignedAmount(accountType, totalDebit, totalCredit)
}

// LineTotal computes quantity times unit price less a percentage discount,
// rounded to two decimal places.
func LineTotal(quantity, unitPrice, discountPct decimal.Decimal) decimal.Decimal {
	gross := quantity.Mul(unitPrice)
	if discountPct.IsZero() {
		return gross.Round(2)
	}
	discount := gross.Mul(discountPct).Div(decimal.NewFromInt(100))
	return gross.Sub(discount).Round(2)
}
