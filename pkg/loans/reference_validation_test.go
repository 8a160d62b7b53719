package loans

import (
	"fmt"
	"math"
	"testing"
)

// ReferencePayment represents a single payment from the reference schedule
type ReferencePayment struct {
	Month            int
	Payment          float64
	PrincipalPayment float64
	Interest         float64
	LoanBalance      float64
}

// getReferenceSchedule returns the authoritative amortization schedule data
// Based on: Loan amount 175,000, Interest rate 4.5%, Term 360 months
// Calculator: https://www.fidelitygroup.com/amortizing-loan-calculator
func getReferenceSchedule() []ReferencePayment {
	return []ReferencePayment{
		{1, 886.70, 230.45, 656.25, 174769.55},
		{2, 886.70, 231.31, 655.39, 174538.24},
		{3, 886.70, 232.18, 654.52, 174306.06},
		{4, 886.70, 233.05, 653.65, 174073.00},
		{5, 886.70, 233.93, 652.77, 173839.08},
		{6, 886.70, 234.80, 651.90, 173604.28},
		{7, 886.70, 235.68, 651.02, 173368.59},
		{8, 886.70, 236.57, 650.13, 173132.03},
		{9, 886.70, 237.45, 649.25, 172894.57},
		{10, 886.70, 238.34, 648.35, 172656.23},
		{11, 886.70, 239.24, 647.46, 172416.99},
		{12, 886.70, 240.14, 646.56, 172176.85},
		// Adding key milestone months for validation
		{24, 886.70, 251.17, 635.53, 169224.01},
		{36, 886.70, 262.71, 623.99, 166135.52},
		{60, 886.70, 287.40, 599.30, 159526.36},
		{120, 886.70, 359.76, 526.94, 140156.51},
		{180, 886.70, 450.35, 436.35, 115909.42},
		{240, 886.70, 563.75, 322.95, 85557.02},
		{300, 886.70, 705.70, 181.00, 47562.00},
		{359, 886.70, 880.09, 6.61, 883.39},
		{360, 886.70, 883.39, 3.31, 0.00},
	}
}

func TestLoanCalculationsAgainstReferenceSchedule(t *testing.T) {
	installment := ExactInstallment(175000, 4.5, 360)
	rows := AmortizationSchedule(175000, 4.5, 360, installment)
	if len(rows) != 360 {
		t.Fatalf("expected 360 rows, got %d", len(rows))
	}

	tolerance := 0.50 // Allow 0.50 difference due to rounding

	for _, ref := range getReferenceSchedule() {
		row := rows[ref.Month-1]

		t.Run(fmt.Sprintf("Month_%d", ref.Month), func(t *testing.T) {
			if math.Abs(row.Amount-ref.Payment) > tolerance {
				t.Errorf("Payment amount mismatch: got %.2f, expected %.2f (diff: %.2f)",
					row.Amount, ref.Payment, math.Abs(row.Amount-ref.Payment))
			}

			if math.Abs(row.Principal-ref.PrincipalPayment) > tolerance {
				t.Errorf("Principal payment mismatch: got %.2f, expected %.2f (diff: %.2f)",
					row.Principal, ref.PrincipalPayment, math.Abs(row.Principal-ref.PrincipalPayment))
			}

			if math.Abs(row.Interest-ref.Interest) > tolerance {
				t.Errorf("Interest payment mismatch: got %.2f, expected %.2f (diff: %.2f)",
					row.Interest, ref.Interest, math.Abs(row.Interest-ref.Interest))
			}

			if math.Abs(row.Value-ref.LoanBalance) > tolerance {
				t.Errorf("Remaining balance mismatch: got %.2f, expected %.2f (diff: %.2f)",
					row.Value, ref.LoanBalance, math.Abs(row.Value-ref.LoanBalance))
			}

			calculatedPayment := row.Principal + row.Interest
			if math.Abs(calculatedPayment-row.Amount) > 0.01 {
				t.Errorf("Payment components don't add up: Principal(%.2f) + Interest(%.2f) = %.2f, but Payment = %.2f",
					row.Principal, row.Interest, calculatedPayment, row.Amount)
			}
		})
	}
}

func TestMonthlyPaymentCalculationAgainstReference(t *testing.T) {
	monthlyPayment := ExactInstallment(175000, 4.5, 360)
	expectedPayment := 886.70
	tolerance := 0.01

	if math.Abs(monthlyPayment-expectedPayment) > tolerance {
		t.Errorf("ExactInstallment() = %.2f, expected %.2f (diff: %.2f)",
			monthlyPayment, expectedPayment, math.Abs(monthlyPayment-expectedPayment))
	}
	if emi := ComputeEMI(175000, 4.5, 360); emi != 887 {
		t.Errorf("ComputeEMI() = %.2f, expected 887", emi)
	}
}

func TestFullScheduleConsistency(t *testing.T) {
	rows := AmortizationSchedule(175000, 4.5, 360, ComputeEMI(175000, 4.5, 360))

	if len(rows) != 360 {
		t.Errorf("Schedule should have 360 payments, got %d", len(rows))
	}

	if final := rows[len(rows)-1]; final.Value != 0 {
		t.Errorf("Final remaining principal should be zero, got %.2f", final.Value)
	}

	previousBalance := 175000.0
	for _, row := range rows[:359] {
		if row.Value >= previousBalance {
			t.Errorf("Remaining principal should decrease each month: month %d balance %.2f >= previous %.2f",
				row.Period, row.Value, previousBalance)
		}
		previousBalance = row.Value
	}
}

func TestReferenceScheduleDataIntegrity(t *testing.T) {
	referenceData := getReferenceSchedule()

	for i, payment := range referenceData {
		t.Run(fmt.Sprintf("RefData_Month_%d", payment.Month), func(t *testing.T) {
			calculatedPayment := payment.PrincipalPayment + payment.Interest
			if math.Abs(calculatedPayment-payment.Payment) > 0.01 {
				t.Errorf("Reference data inconsistent: Principal(%.2f) + Interest(%.2f) = %.2f, but Payment = %.2f",
					payment.PrincipalPayment, payment.Interest, calculatedPayment, payment.Payment)
			}

			if i > 0 && payment.LoanBalance >= referenceData[i-1].LoanBalance {
				t.Errorf("Reference loan balance should decrease: Month %d balance %.2f >= Month %d balance %.2f",
					payment.Month, payment.LoanBalance, referenceData[i-1].Month, referenceData[i-1].LoanBalance)
			}
		})
	}
}
