package device

import (
	"sort"
	"testing"
)

func TestDriverInfoListSorting(t *testing.T) {
	defer func(orig DriverInfoList) { registeredDrivers = orig }(registeredDrivers)
	registeredDrivers = nil

	for _, order := range []int{30, 10, 20} {
		RegisterDriver(&DriverInfo{Order: order})
	}

	list := DriverList()
	if exp, got := 3, list.Len(); got != exp {
		t.Fatalf("expected DriverList() to return %d entries; got %d", exp, got)
	}

	sort.Sort(list)
	for i, expOrder := range []int{10, 20, 30} {
		if list[i].Order != expOrder {
			t.Fatalf("expected entry %d to have order %d; got %d", i, expOrder, list[i].Order)
		}
	}
}
