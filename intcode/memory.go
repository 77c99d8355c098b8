package intcode

import "fmt"

// MaxAddress bounds the tape when no memory limit is configured.
const MaxAddress = 1<<28 - 1

// Memory is the VM tape. It grows with zero cells whenever an address past its end is touched.
type Memory []int64

func (m *Memory) Read(addr int64) (int64, error) {
	if err := m.grow(addr, 0); err != nil {
		return 0, err
	}
	return (*m)[addr], nil
}

func (m *Memory) Write(addr int64, value int64) error {
	if err := m.grow(addr, 0); err != nil {
		return err
	}
	(*m)[addr] = value
	return nil
}

func (m *Memory) grow(addr int64, limit int64) error {
	if addr < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAddress, addr)
	}
	if limit > 0 && addr >= limit {
		return fmt.Errorf("%w: %d exceeds memory limit %d", ErrInvalidAddress, addr, limit)
	}
	if addr > MaxAddress {
		return fmt.Errorf("%w: %d exceeds max address %d", ErrInvalidAddress, addr, MaxAddress)
	}
	if addr < int64(len(*m)) {
		return nil
	}
	*m = append(*m, make([]int64, addr+1-int64(len(*m)))...)
	return nil
}
