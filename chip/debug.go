package chip

import (
	"fmt"
)

type DebugFlags struct {
	ReadOnlyWrites   int // writes dropped by flag registers
	UnmodelledAccess int // accesses to pages other than 0 and 1
	BoundaryErrors   int // transfers running past the end of a page
	PageSelects      int
	Resets           int

	LastReadOnlyReg int // Address of the last dropped write
}

func (df *DebugFlags) Reset() {
	df.ReadOnlyWrites = 0
	df.UnmodelledAccess = 0
	df.BoundaryErrors = 0
	df.PageSelects = 0
	df.Resets = 0
	df.LastReadOnlyReg = -1
}

func (df *DebugFlags) Print() {
	fmt.Printf("DebugFlags:\n"+
		" ReadOnlyWrites = %d\n"+
		" LastReadOnlyReg = %d\n"+
		" UnmodelledAccess = %d\n"+
		" BoundaryErrors = %d\n"+
		" PageSelects = %d\n"+
		" Resets = %d\n",
		df.ReadOnlyWrites,
		df.LastReadOnlyReg,
		df.UnmodelledAccess,
		df.BoundaryErrors,
		df.PageSelects,
		df.Resets)
}
