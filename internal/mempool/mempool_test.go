package mempool

import "testing"

func TestAllocTypedView(t *testing.T) {
	ctx := NewContext()

	f := Alloc[float64](ctx.Device, 5)
	if len(f) != 5 {
		t.Fatalf("Alloc[float64](5) returned len %d", len(f))
	}
	for i := range f {
		f[i] = float64(i) * 1.5
	}
	if f[4] != 6.0 {
		t.Errorf("typed view write failed: got %v", f[4])
	}

	u := Alloc[uint32](ctx.Device, 3)
	if len(u) != 3 {
		t.Fatalf("Alloc[uint32](3) returned len %d", len(u))
	}

	Free(ctx.Device, f)
	Free(ctx.Device, u)
}

func TestRecycle(t *testing.T) {
	ctx := NewContext()

	s := Alloc[uint64](ctx.Device, 8)
	Free(ctx.Device, s)

	// Same word count comes back from the free list.
	s2 := Alloc[uint64](ctx.Device, 8)
	allocated, recycled := ctx.Device.Stats()
	if allocated != 1 {
		t.Errorf("allocated = %d, want 1", allocated)
	}
	if recycled != 1 {
		t.Errorf("recycled = %d, want 1", recycled)
	}
	Free(ctx.Device, s2)

	// A different word count allocates fresh.
	s3 := Alloc[uint64](ctx.Device, 16)
	allocated, recycled = ctx.Device.Stats()
	if allocated != 2 || recycled != 1 {
		t.Errorf("after mismatched size: allocated = %d recycled = %d", allocated, recycled)
	}
	Free(ctx.Device, s3)
}

func TestZeroedArenaClearsOnRecycle(t *testing.T) {
	ctx := NewContext()

	s := Alloc[uint32](ctx.DeviceZeroed, 4)
	for i := range s {
		s[i] = 0xdeadbeef
	}
	Free(ctx.DeviceZeroed, s)

	s2 := Alloc[uint32](ctx.DeviceZeroed, 4)
	for i, v := range s2 {
		if v != 0 {
			t.Fatalf("recycled zeroed slab not cleared at %d: %#x", i, v)
		}
	}
}

func TestDistinctArenas(t *testing.T) {
	ctx := NewContext()
	if ctx.Pinned.Kind() != Pinned {
		t.Errorf("Pinned pool kind = %v", ctx.Pinned.Kind())
	}
	if ctx.Device.Kind() != Device {
		t.Errorf("Device pool kind = %v", ctx.Device.Kind())
	}
	if ctx.DeviceZeroed.Kind() != DeviceZeroed {
		t.Errorf("DeviceZeroed pool kind = %v", ctx.DeviceZeroed.Kind())
	}
}

func TestAllocRejectsNonPositive(t *testing.T) {
	ctx := NewContext()
	defer func() {
		if recover() == nil {
			t.Fatal("Alloc with n=0 did not panic")
		}
	}()
	Alloc[float32](ctx.Pinned, 0)
}

func TestKindString(t *testing.T) {
	cases := []struct {
		k    Kind
		want string
	}{
		{Pinned, "pinned"},
		{Device, "device"},
		{DeviceZeroed, "device-zeroed"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(c.k), got, c.want)
		}
	}
}
