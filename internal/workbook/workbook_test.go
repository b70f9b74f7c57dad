package workbook

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"procurement/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var exportedAt = time.Date(2024, 6, 10, 9, 45, 12, 0, time.UTC)

func sampleSnapshot() Snapshot {
	d := decimal.RequireFromString
	return Snapshot{
		Orders: []model.Order{
			{
				OrderNumber: "PO-001", Supplier: "Acme", Country: model.CountryChina, Product: "Widgets",
				Value: d("1250.50"), PaymentTerms: model.Terms30Days, OrderDate: "2024-05-01",
				LeadTimeDays: 40, PromisedDate: "2024-06-10", Status: model.OrderStatusShipped,
				PaymentStatus: model.PaymentFlagAdvance, Notes: "first batch, fragile",
			},
			{
				OrderNumber: "1002", Supplier: "Globex", Country: model.CountryUSA, Product: "Bolts",
				Value: d("0"), PaymentTerms: model.TermsCash, OrderDate: "2024-05-03",
				LeadTimeDays: 7, PromisedDate: "not sure yet", ActualDate: "2024-05-09",
				Status: model.OrderStatusDelivered, PaymentStatus: model.PaymentFlagYes,
			},
		},
		FollowUps: []model.FollowUp{
			{Date: "2024-05-10", Supplier: "Acme", OrderNumber: "PO-001", Channel: model.ChannelWhatsApp, ResponseSLADays: 3},
			{Date: "2024-05-11", Supplier: "Globex", OrderNumber: "PO-404", Channel: model.ChannelEmail, ResponseSLADays: 0},
		},
		Payments: []model.Payment{
			{OrderNumber: "PO-001", Supplier: "Acme", TotalValue: d("1250.50"), PaidValue: d("400"), PercentPaid: d("31.99"), ExpectedDate: "2024-07-01", Status: model.PaymentStatusPartiallyPaid},
			{OrderNumber: "PO-002", Supplier: "Initech", TotalValue: d("0"), PaidValue: d("0"), PercentPaid: d("0"), ExpectedDate: "2024-07-15", Status: model.PaymentStatusPending},
		},
		ExportedAt: exportedAt,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	data, err := Encode(snap)
	require.NoError(t, err)

	doc, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "2024-06-10 09:45:12", doc.LastUpdate)
	for _, s := range doc.Sections() {
		assert.Equal(t, SectionLoaded, s.State, s.Sheet)
		assert.Empty(t, s.Reason)
	}

	require.Len(t, doc.Orders.Rows, len(snap.Orders))
	for i, want := range snap.Orders {
		got := doc.Orders.Rows[i]
		assert.True(t, want.Value.Equal(got.Value), "order %d value %s", i, got.Value)
		got.Value = want.Value
		assert.Equal(t, want, got)
	}

	assert.Equal(t, snap.FollowUps, doc.FollowUps.Rows)

	require.Len(t, doc.Payments.Rows, len(snap.Payments))
	for i, want := range snap.Payments {
		got := doc.Payments.Rows[i]
		assert.True(t, want.TotalValue.Equal(got.TotalValue))
		assert.True(t, want.PaidValue.Equal(got.PaidValue))
		assert.True(t, want.PercentPaid.Equal(got.PercentPaid), "stored percent is kept, not recomputed")
		assert.Equal(t, want.OrderNumber, got.OrderNumber)
		assert.Equal(t, want.Supplier, got.Supplier)
		assert.Equal(t, want.ExpectedDate, got.ExpectedDate)
		assert.Equal(t, want.Status, got.Status)
	}
}

func TestEncodeSheetLayout(t *testing.T) {
	data, err := Encode(sampleSnapshot())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetOrders, SheetFollowUps, SheetPayments, SheetInfo}, f.GetSheetList())

	for sheet, header := range map[string][]string{
		SheetOrders:    OrderColumns,
		SheetFollowUps: FollowUpColumns,
		SheetPayments:  PaymentColumns,
		SheetInfo:      InfoColumns,
	} {
		rows, err := f.GetRows(sheet)
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		assert.Equal(t, header, rows[0], sheet)
	}
	assert.Len(t, OrderColumns, 13)
	assert.Len(t, FollowUpColumns, 5)
	assert.Len(t, PaymentColumns, 7)

	info, err := f.GetRows(SheetInfo)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		InfoColumns,
		{InfoLastUpdate, "2024-06-10 09:45:12"},
		{InfoTotalOrders, "2"},
		{InfoTotalFollowUps, "2"},
		{InfoTotalPayments, "2"},
	}, info)
}

func TestEncodeEmptySnapshot(t *testing.T) {
	data, err := Encode(Snapshot{ExportedAt: exportedAt})
	require.NoError(t, err)

	doc, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, SectionLoaded, doc.Orders.State)
	assert.Empty(t, doc.Orders.Rows)
	assert.Empty(t, doc.FollowUps.Rows)
	assert.Empty(t, doc.Payments.Rows)
}

// rewrite opens an encoded backup, lets edit change it and returns the result.
func rewrite(t *testing.T, snap Snapshot, edit func(f *excelize.File)) []byte {
	t.Helper()
	data, err := Encode(snap)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	edit(f)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecodeMissingPaymentsSheet(t *testing.T) {
	data := rewrite(t, sampleSnapshot(), func(f *excelize.File) {
		require.NoError(t, f.DeleteSheet(SheetPayments))
	})

	doc, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, SectionAbsent, doc.Payments.State)
	assert.NotNil(t, doc.Payments.Rows)
	assert.Empty(t, doc.Payments.Rows)

	assert.Equal(t, SectionLoaded, doc.Orders.State)
	assert.Len(t, doc.Orders.Rows, 2)
	assert.Equal(t, SectionLoaded, doc.FollowUps.State)
	assert.Len(t, doc.FollowUps.Rows, 2)
}

func TestDecodeMissingInfoSheet(t *testing.T) {
	data := rewrite(t, sampleSnapshot(), func(f *excelize.File) {
		require.NoError(t, f.DeleteSheet(SheetInfo))
	})

	doc, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DateUnknown, doc.LastUpdate)
	assert.Len(t, doc.Orders.Rows, 2)
}

func TestDecodeMalformedSections(t *testing.T) {
	data := rewrite(t, sampleSnapshot(), func(f *excelize.File) {
		// header without the Supplier column
		require.NoError(t, f.SetCellValue(SheetFollowUps, "B1", "Vendor"))
		// text where an amount belongs
		require.NoError(t, f.SetCellValue(SheetOrders, "E3", "a lot"))
	})

	doc, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, SectionMalformed, doc.FollowUps.State)
	assert.Empty(t, doc.FollowUps.Rows)
	assert.Contains(t, doc.FollowUps.Status().Reason, ColSupplier)

	assert.Equal(t, SectionMalformed, doc.Orders.State)
	assert.Empty(t, doc.Orders.Rows)
	assert.Contains(t, doc.Orders.Status().Reason, "row 3")

	assert.Equal(t, SectionLoaded, doc.Payments.State)
	assert.Len(t, doc.Payments.Rows, 2)
}

func TestDecodeRecomputesMissingPercentPaid(t *testing.T) {
	data := rewrite(t, sampleSnapshot(), func(f *excelize.File) {
		require.NoError(t, f.RemoveCol(SheetPayments, "E"))
	})

	doc, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, SectionLoaded, doc.Payments.State)
	require.Len(t, doc.Payments.Rows, 2)

	assert.True(t, decimal.RequireFromString("31.99").Equal(doc.Payments.Rows[0].PercentPaid))
	assert.True(t, doc.Payments.Rows[1].PercentPaid.IsZero())
	assert.Equal(t, "2024-07-01", string(doc.Payments.Rows[0].ExpectedDate))
}

func TestDecodeExtraSheetsAndColumns(t *testing.T) {
	data := rewrite(t, sampleSnapshot(), func(f *excelize.File) {
		_, err := f.NewSheet("Scratch")
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(SheetOrders, "N1", "Owner"))
		require.NoError(t, f.SetCellValue(SheetOrders, "N2", "maria"))
	})

	doc, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, SectionLoaded, doc.Orders.State)
	assert.Len(t, doc.Orders.Rows, 2)
}

func TestDecodeSerialDates(t *testing.T) {
	data := rewrite(t, sampleSnapshot(), func(f *excelize.File) {
		// 45453 is 2024-06-10 in the 1900 date system
		require.NoError(t, f.SetCellValue(SheetOrders, "I2", 45453))
	})

	doc, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, doc.Orders.Rows, 2)
	assert.Equal(t, model.Date("2024-06-10"), doc.Orders.Rows[0].PromisedDate)
}

func TestDecodeKeepsNumericLookingDateText(t *testing.T) {
	snap := sampleSnapshot()
	snap.Orders[0].PromisedDate = "12"
	snap.Orders[0].ActualDate = "20240610"
	snap.FollowUps[0].Date = "45453"
	snap.Payments[1].ExpectedDate = "7"

	data, err := Encode(snap)
	require.NoError(t, err)

	doc, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, doc.Orders.Rows, 2)
	require.Len(t, doc.FollowUps.Rows, 2)
	require.Len(t, doc.Payments.Rows, 2)

	assert.Equal(t, model.Date("12"), doc.Orders.Rows[0].PromisedDate)
	assert.Equal(t, model.Date("20240610"), doc.Orders.Rows[0].ActualDate)
	assert.Equal(t, model.Date("45453"), doc.FollowUps.Rows[0].Date)
	assert.Equal(t, model.Date("7"), doc.Payments.Rows[1].ExpectedDate)
}

func TestDecodeSkipsBlankRows(t *testing.T) {
	data := rewrite(t, sampleSnapshot(), func(f *excelize.File) {
		require.NoError(t, f.InsertRows(SheetOrders, 3, 1))
		require.NoError(t, f.SetCellValue(SheetOrders, "M3", "   "))
	})

	doc, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, SectionLoaded, doc.Orders.State)
	require.Len(t, doc.Orders.Rows, 2)
	assert.Equal(t, "PO-001", doc.Orders.Rows[0].OrderNumber)
	assert.Equal(t, "1002", doc.Orders.Rows[1].OrderNumber)
}

func TestEmptyRowsSurviveRoundTrip(t *testing.T) {
	snap := Snapshot{
		Orders:     []model.Order{{}},
		FollowUps:  []model.FollowUp{{}},
		Payments:   []model.Payment{{}},
		ExportedAt: exportedAt,
	}

	data, err := Encode(snap)
	require.NoError(t, err)

	doc, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, doc.Orders.Rows, 1)
	require.Len(t, doc.FollowUps.Rows, 1)
	require.Len(t, doc.Payments.Rows, 1)
	assert.Empty(t, doc.Orders.Rows[0].OrderNumber)
	assert.True(t, doc.Orders.Rows[0].Value.IsZero())
	assert.Empty(t, doc.FollowUps.Rows[0].Supplier)
	assert.True(t, doc.Payments.Rows[0].TotalValue.IsZero())
}

func TestDecodeUnreadableDocument(t *testing.T) {
	_, err := Decode(strings.NewReader("Order No,Supplier\nPO-1,Acme\n"))
	assert.ErrorIs(t, err, ErrDocumentUnreadable)
}

func TestWriteOrdersCSV(t *testing.T) {
	snap := sampleSnapshot()

	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, snap.Orders))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(OrderColumns, ","), lines[0])
	assert.Equal(t, `PO-001,Acme,China,Widgets,1250.5,30 days,2024-05-01,40,2024-06-10,,Shipped,Advance,"first batch, fragile"`, lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "1002,Globex,USA,Bolts,0,Cash,"))
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "orders_backup_20240610_0945.xlsx", BackupFilename(exportedAt))
	assert.Equal(t, "orders_20240610.csv", OrdersCSVFilename(exportedAt))
}
