package payment

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainAgreement "lendit-backend/internal/domain/agreement"
	"lendit-backend/internal/domain/notification"
	"lendit-backend/internal/domain/payment"
	"lendit-backend/internal/domain/transaction"
	"lendit-backend/internal/testutil/agreementmock"
	"lendit-backend/internal/testutil/notificationmock"
	"lendit-backend/internal/testutil/transactionmock"
)

const (
	testAgreementID = "a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4"
	borrowerID      = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	lenderID        = "1111111111111111111111111111111"
)

type harness struct {
	uc        *Usecase
	persisted []*transaction.Transaction
	notifs    *notificationmock.Repo
}

// newHarness wires the dispatcher over an active agreement and a recording
// transaction store.
func newHarness(t *testing.T, status domainAgreement.Status) *harness {
	t.Helper()
	h := &harness{notifs: &notificationmock.Repo{}}

	agreements := &agreementmock.Repo{
		GetByAgreementIDFn: func(_ context.Context, agreementID string) (*domainAgreement.Agreement, error) {
			if agreementID != testAgreementID {
				return nil, domainAgreement.ErrNotFound
			}
			return &domainAgreement.Agreement{
				AgreementID: testAgreementID,
				BorrowerID:  borrowerID,
				LenderID:    lenderID,
				Status:      status,
			}, nil
		},
	}
	txns := &transactionmock.Repo{
		CreateFn: func(_ context.Context, tx *transaction.Transaction) error {
			h.persisted = append(h.persisted, tx)
			return nil
		},
	}
	h.uc = NewUsecase(agreements, txns, h.notifs, Config{
		MerchantVPA:          "lendit@ybl",
		DefaultCryptoNetwork: payment.NetworkEthereum,
	})
	return h
}

func repayment(amount float64, method payment.Method, md payment.Metadata) Intent {
	return Intent{
		AgreementID: testAgreementID,
		Type:        transaction.TypeRepayment,
		Amount:      amount,
		Method:      method,
		PayerID:     borrowerID,
		RecipientID: lenderID,
		Metadata:    md,
	}
}

func TestProcessPayment_UPISettlesInstantly(t *testing.T) {
	h := newHarness(t, domainAgreement.StatusActive)

	res, err := h.uc.ProcessPayment(context.Background(), repayment(50000, payment.MethodUPI, payment.Metadata{UPIAddress: "bharat@okhdfc"}))
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}
	if !res.Success {
		t.Fatalf("result = %+v, want success", res)
	}
	if res.Status != string(transaction.StatusCompleted) {
		t.Fatalf("status = %s, want completed", res.Status)
	}
	if !strings.HasPrefix(res.ReferenceID, "upi_") {
		t.Fatalf("reference = %q, want upi_ prefix", res.ReferenceID)
	}
	if len(h.persisted) != 1 {
		t.Fatalf("persisted rows = %d, want 1", len(h.persisted))
	}
	row := h.persisted[0]
	if row.Status != transaction.StatusCompleted || row.Amount != 50000 || row.Method != payment.MethodUPI {
		t.Fatalf("persisted row = %+v", row)
	}
	if got := h.notifs.ByType(notification.TypePaymentReceived); len(got) != 1 || got[0].UserID != lenderID {
		t.Fatalf("recipient notification = %+v", got)
	}
}

func TestProcessPayment_OverCapFailsWithoutWriting(t *testing.T) {
	h := newHarness(t, domainAgreement.StatusActive)

	res, err := h.uc.ProcessPayment(context.Background(), repayment(150000, payment.MethodUPI, payment.Metadata{UPIAddress: "bharat@okhdfc"}))
	if err != nil {
		t.Fatalf("a business reject must not be an error: %v", err)
	}
	if res.Success {
		t.Fatalf("150000 over the UPI cap must fail, got %+v", res)
	}
	if !strings.Contains(res.Message, "limit") {
		t.Fatalf("message = %q, want the limit named", res.Message)
	}
	if len(h.persisted) != 0 {
		t.Fatalf("validation rejects must not persist rows, got %d", len(h.persisted))
	}
}

func TestProcessPayment_CapsPerMethod(t *testing.T) {
	cases := []struct {
		method payment.Method
		amount float64
		md     payment.Metadata
		ok     bool
	}{
		{payment.MethodUPI, 100000, payment.Metadata{UPIAddress: "asha@ybl"}, true},
		{payment.MethodUPI, 100000.01, payment.Metadata{UPIAddress: "asha@ybl"}, false},
		{payment.MethodBank, 10000000, payment.Metadata{AccountNumber: "123456789012", IFSC: "HDFC0001234"}, true},
		{payment.MethodBank, 10000001, payment.Metadata{AccountNumber: "123456789012", IFSC: "HDFC0001234"}, false},
		{payment.MethodWallet, 200000, payment.Metadata{WalletID: "9876543210"}, true},
		{payment.MethodWallet, 200001, payment.Metadata{WalletID: "9876543210"}, false},
		{payment.MethodCrypto, 50000000, payment.Metadata{CryptoAddress: "0x52908400098527886E0F7030069857D2E4169EE7"}, true},
		{payment.MethodCash, 200001, payment.Metadata{}, false},
	}
	for _, c := range cases {
		h := newHarness(t, domainAgreement.StatusActive)
		res, err := h.uc.ProcessPayment(context.Background(), repayment(c.amount, c.method, c.md))
		if err != nil {
			t.Fatalf("%s %v: %v", c.method, c.amount, err)
		}
		if res.Success != c.ok {
			t.Fatalf("%s %v: success = %v, want %v (%s)", c.method, c.amount, res.Success, c.ok, res.Message)
		}
	}
}

func TestProcessPayment_DelayedMethodsStayPending(t *testing.T) {
	cases := []struct {
		method payment.Method
		md     payment.Metadata
		prefix string
	}{
		{payment.MethodBank, payment.Metadata{AccountNumber: "123456789012", IFSC: "HDFC0001234"}, "bank_"},
		{payment.MethodCrypto, payment.Metadata{CryptoAddress: "0x52908400098527886E0F7030069857D2E4169EE7"}, "crypto_"},
	}
	for _, c := range cases {
		h := newHarness(t, domainAgreement.StatusActive)
		res, err := h.uc.ProcessPayment(context.Background(), repayment(75000, c.method, c.md))
		if err != nil {
			t.Fatalf("%s: %v", c.method, err)
		}
		if !res.Success || res.Status != string(transaction.StatusPending) {
			t.Fatalf("%s: result = %+v, want pending success", c.method, res)
		}
		if !strings.HasPrefix(res.ReferenceID, c.prefix) {
			t.Fatalf("%s reference = %q", c.method, res.ReferenceID)
		}
		if h.persisted[0].Status != transaction.StatusPending {
			t.Fatalf("%s row status = %s, want pending", c.method, h.persisted[0].Status)
		}
	}
}

func TestProcessPayment_MetadataValidation(t *testing.T) {
	cases := []struct {
		name   string
		method payment.Method
		md     payment.Metadata
	}{
		{"upi missing vpa", payment.MethodUPI, payment.Metadata{}},
		{"upi malformed vpa", payment.MethodUPI, payment.Metadata{UPIAddress: "no-at-sign"}},
		{"bank short account", payment.MethodBank, payment.Metadata{AccountNumber: "1234", IFSC: "HDFC0001234"}},
		{"bank bad ifsc", payment.MethodBank, payment.Metadata{AccountNumber: "123456789012", IFSC: "HD0001234"}},
		{"wallet bad id", payment.MethodWallet, payment.Metadata{WalletID: "12"}},
		{"crypto missing address", payment.MethodCrypto, payment.Metadata{}},
		{"crypto bad address", payment.MethodCrypto, payment.Metadata{CryptoAddress: "not-an-address"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, domainAgreement.StatusActive)
			res, err := h.uc.ProcessPayment(context.Background(), repayment(1000, c.method, c.md))
			if err != nil {
				t.Fatalf("metadata reject must not be an error: %v", err)
			}
			if res.Success {
				t.Fatalf("expected failure, got %+v", res)
			}
			if len(h.persisted) != 0 {
				t.Fatalf("no row expected for %s", c.name)
			}
		})
	}
}

func TestProcessPayment_WalletReportsFee(t *testing.T) {
	h := newHarness(t, domainAgreement.StatusActive)
	res, err := h.uc.ProcessPayment(context.Background(), repayment(10000, payment.MethodWallet, payment.Metadata{WalletID: "9876543210"}))
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}
	if !res.Success {
		t.Fatalf("result = %+v", res)
	}
	fee, ok := res.Metadata["fee"].(float64)
	if !ok || fee != 150 {
		t.Fatalf("fee = %v, want 150 (1.5%% of 10000)", res.Metadata["fee"])
	}
}

func TestProcessPayment_RequiresActiveAgreement(t *testing.T) {
	for _, status := range []domainAgreement.Status{
		domainAgreement.StatusPending,
		domainAgreement.StatusClaimed,
		domainAgreement.StatusCompleted,
		domainAgreement.StatusRejected,
	} {
		h := newHarness(t, status)
		res, err := h.uc.ProcessPayment(context.Background(), repayment(1000, payment.MethodCash, payment.Metadata{}))
		if err != nil {
			t.Fatalf("%s: %v", status, err)
		}
		if res.Success {
			t.Fatalf("payment against a %s agreement must fail", status)
		}
	}

	h := newHarness(t, domainAgreement.StatusActive)
	in := repayment(1000, payment.MethodCash, payment.Metadata{})
	in.AgreementID = "unknown"
	res, err := h.uc.ProcessPayment(context.Background(), in)
	if err != nil || res.Success {
		t.Fatalf("unknown agreement: res=%+v err=%v", res, err)
	}
}

func TestProcessPayment_UnknownMethodAndBadAmount(t *testing.T) {
	h := newHarness(t, domainAgreement.StatusActive)

	res, err := h.uc.ProcessPayment(context.Background(), repayment(1000, "cheque", payment.Metadata{}))
	if err != nil || res.Success {
		t.Fatalf("cheque: res=%+v err=%v", res, err)
	}

	res, err = h.uc.ProcessPayment(context.Background(), repayment(0, payment.MethodCash, payment.Metadata{}))
	if err != nil || res.Success {
		t.Fatalf("zero amount: res=%+v err=%v", res, err)
	}

	in := repayment(1000, payment.MethodCash, payment.Metadata{})
	in.Type = "gift"
	res, err = h.uc.ProcessPayment(context.Background(), in)
	if err != nil || res.Success {
		t.Fatalf("bad type: res=%+v err=%v", res, err)
	}
}

func TestProcessPayment_PersistFailureIsAnError(t *testing.T) {
	agreements := &agreementmock.Repo{
		GetByAgreementIDFn: func(context.Context, string) (*domainAgreement.Agreement, error) {
			return &domainAgreement.Agreement{AgreementID: testAgreementID, Status: domainAgreement.StatusActive}, nil
		},
	}
	boom := errors.New("connection reset")
	txns := &transactionmock.Repo{
		CreateFn: func(context.Context, *transaction.Transaction) error { return boom },
	}
	uc := NewUsecase(agreements, txns, nil, Config{MerchantVPA: "lendit@ybl"})

	_, err := uc.ProcessPayment(context.Background(), repayment(1000, payment.MethodCash, payment.Metadata{}))
	if !errors.Is(err, boom) {
		t.Fatalf("want the store error surfaced, got %v", err)
	}
}

func TestProcessPayment_HonorsCallerReference(t *testing.T) {
	h := newHarness(t, domainAgreement.StatusActive)
	in := repayment(1000, payment.MethodCash, payment.Metadata{})
	in.Reference = "settle-2026-08"
	res, err := h.uc.ProcessPayment(context.Background(), in)
	if err != nil || !res.Success {
		t.Fatalf("res=%+v err=%v", res, err)
	}
	if res.ReferenceID != "settle-2026-08" {
		t.Fatalf("reference = %q, want the caller's key reused", res.ReferenceID)
	}
}

func TestFinalizeTransaction(t *testing.T) {
	var gotID string
	var gotStatus transaction.Status
	txns := &transactionmock.Repo{
		FinalizeStatusFn: func(_ context.Context, id string, s transaction.Status) error {
			gotID, gotStatus = id, s
			return nil
		},
	}
	uc := NewUsecase(&agreementmock.Repo{}, txns, nil, Config{})

	if err := uc.FinalizeTransaction(context.Background(), "t1", transaction.StatusCompleted); err != nil {
		t.Fatalf("FinalizeTransaction: %v", err)
	}
	if gotID != "t1" || gotStatus != transaction.StatusCompleted {
		t.Fatalf("forwarded %q/%q", gotID, gotStatus)
	}

	if err := uc.FinalizeTransaction(context.Background(), "t1", transaction.StatusPending); err == nil {
		t.Fatalf("finalizing back to pending must be rejected")
	}
}

func TestListTransactions_PartyOnly(t *testing.T) {
	agreements := &agreementmock.Repo{
		GetByAgreementIDFn: func(context.Context, string) (*domainAgreement.Agreement, error) {
			return &domainAgreement.Agreement{
				AgreementID: testAgreementID,
				BorrowerID:  borrowerID,
				LenderID:    lenderID,
				Status:      domainAgreement.StatusActive,
			}, nil
		},
	}
	txns := &transactionmock.Repo{
		ListByAgreementIDFn: func(context.Context, string) ([]*transaction.Transaction, error) {
			return []*transaction.Transaction{{TransactionID: "t1"}}, nil
		},
	}
	uc := NewUsecase(agreements, txns, nil, Config{})

	list, err := uc.ListTransactions(context.Background(), borrowerID, testAgreementID)
	if err != nil || len(list) != 1 {
		t.Fatalf("borrower list: %v %v", list, err)
	}
	if _, err := uc.ListTransactions(context.Background(), "someone-else", testAgreementID); !errors.Is(err, domainAgreement.ErrNotAuthorized) {
		t.Fatalf("stranger: want ErrNotAuthorized, got %v", err)
	}
}
