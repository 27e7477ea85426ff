package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
)

// SeedDemo carga un maestro pequeño para levantar la API sin PostgreSQL (STORE_DRIVER=memory).
func SeedDemo(s *Store) {
	d := decimal.NewFromInt
	s.AddProduct("PR-001", "制御盤 標準タイプ")
	s.AddProduct("PR-002", "操作パネル")

	s.AddPart(entity.Part{PartCode: "BRK-10A", Specification: "ブレーカー 10A", Category: "電装", Supplier: "北陸電機", UnitPrice: d(1200), LeadTimeDays: 14, SafetyStock: d(20), IsActive: true})
	s.AddPart(entity.Part{PartCode: "TRM-4P", Specification: "端子台 4P", Category: "電装", Supplier: "北陸電機", UnitPrice: d(180), LeadTimeDays: 7, SafetyStock: d(100), IsActive: true})
	s.AddPart(entity.Part{PartCode: "CAB-SM", Specification: "筐体 S", Category: "板金", Supplier: "金沢板金", UnitPrice: d(5400), LeadTimeDays: 21, SafetyStock: d(5), IsActive: true})
	s.AddPart(entity.Part{PartCode: "LED-G", Specification: "表示灯 緑", Category: "電装", Supplier: "北陸電機", UnitPrice: d(320), LeadTimeDays: 10, SafetyStock: d(30), IsActive: true})

	s.AddBOMLine("PR-001", "BRK-10A", d(2))
	s.AddBOMLine("PR-001", "TRM-4P", d(8))
	s.AddBOMLine("PR-001", "CAB-SM", d(1))
	s.AddBOMLine("PR-002", "LED-G", d(4))
	s.AddBOMLine("PR-002", "TRM-4P", d(2))

	s.AddStationUsage(entity.StationUsage{ProductCode: "PR-001", StationCode: "ST-10", StationName: "組立", PartCode: "BRK-10A", Quantity: d(2)})
	s.AddStationUsage(entity.StationUsage{ProductCode: "PR-001", StationCode: "ST-20", StationName: "配線", PartCode: "TRM-4P", Quantity: d(8)})
	s.AddStationUsage(entity.StationUsage{ProductCode: "PR-001", StationCode: "ST-10", StationName: "組立", PartCode: "CAB-SM", Quantity: d(1)})

	s.SetStock("BRK-10A", d(40))
	s.SetStock("TRM-4P", d(120))
	s.SetStock("CAB-SM", d(6))
	s.SetStock("LED-G", d(12))

	arrival := s.now().AddDate(0, 0, 10).Truncate(24 * time.Hour)
	s.AddScheduledReceipt(entity.ScheduledReceipt{
		OrderNo: "PO-0001", PartCode: "CAB-SM", Supplier: "金沢板金",
		OrderQuantity: d(10), OrderDate: s.now(), RequestedDate: &arrival,
		Status: entity.ReceiptStatusAwaitingReply,
	})
}
