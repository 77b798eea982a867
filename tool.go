package editor

// Tool is the editing tool currently selected in the editor.
type Tool int

const (
	ToolSelect Tool = iota
	ToolCrop
	ToolFilter
	ToolAdjust
	ToolDraw
	ToolFaceCut
	ToolEraser
)

var toolNames = [...]string{
	ToolSelect:  "select",
	ToolCrop:    "crop",
	ToolFilter:  "filter",
	ToolAdjust:  "adjust",
	ToolDraw:    "draw",
	ToolFaceCut: "face_cut",
	ToolEraser:  "eraser",
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return "unknown"
	}
	return toolNames[t]
}

// DisplayName returns the tool's label for menus.
func (t Tool) DisplayName() string {
	return DisplayName(t.String())
}

// ParseTool converts a name produced by String back to a Tool.
func ParseTool(name string) (Tool, bool) {
	name = normalizeName(name)
	for i, n := range toolNames {
		if n == name {
			return Tool(i), true
		}
	}
	return ToolSelect, false
}
