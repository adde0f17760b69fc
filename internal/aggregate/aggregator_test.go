package aggregate

import "testing"

func TestRecordHitAndAddress(t *testing.T) {
	aggregator := New()

	aggregator.RecordHit()
	aggregator.RecordAddress("10.0.0.1")
	aggregator.RecordHit()
	aggregator.RecordAddress("10.0.0.1")
	aggregator.RecordHit()
	aggregator.RecordAddress("10.0.0.2")
	// 匹配但没有地址的行只计入总数
	aggregator.RecordHit()

	if aggregator.Total() != 4 {
		t.Fatalf("expected total=4, got %d", aggregator.Total())
	}

	addresses := aggregator.Addresses()
	if len(addresses) != 2 || addresses["10.0.0.1"] != 2 || addresses["10.0.0.2"] != 1 {
		t.Fatalf("unexpected address map: %v", addresses)
	}
	if aggregator.AddressSum() != 3 {
		t.Fatalf("expected address sum=3, got %d", aggregator.AddressSum())
	}
}

// TestAddressesReturnsCopy 验证外部修改不会影响内部状态。
func TestAddressesReturnsCopy(t *testing.T) {
	aggregator := New()
	aggregator.RecordAddress("10.0.0.1")

	snapshot := aggregator.Addresses()
	snapshot["10.0.0.1"] = 100
	snapshot["10.0.0.9"] = 1

	if got := aggregator.Addresses(); len(got) != 1 || got["10.0.0.1"] != 1 {
		t.Fatalf("internal map was mutated: %v", got)
	}
}

func TestEmptyAggregator(t *testing.T) {
	aggregator := New()
	if aggregator.Total() != 0 || aggregator.AddressSum() != 0 || len(aggregator.Addresses()) != 0 {
		t.Fatalf("new aggregator must be empty")
	}
}
