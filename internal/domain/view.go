package domain

// View 是给展示层的只读快照（展示层只读，不持有可变状态）。
type View struct {
	SourceDir string

	// Current 仅在 HasCurrent=true 时有意义。
	Current    ImagePath
	HasCurrent bool
	Index      int
	Total      int

	Dest           [SlotCount]string
	DestConfigured [SlotCount]bool
}
