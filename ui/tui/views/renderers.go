package views

import (
	"hybridctl/ui/tui/state"
)

func RenderConfig(s state.AppState, props ViewProps, inputs [4]string) string {
	v := ConfigView{Inputs: inputs}
	return v.Render(s, props)
}

func RenderModules(s state.AppState, props ViewProps, filterInput string) string {
	v := ModulesView{FilterInput: filterInput}
	return v.Render(s, props)
}

func RenderLogs(s state.AppState, props ViewProps, filterInput string) string {
	v := LogsView{FilterInput: filterInput}
	return v.Render(s, props)
}

func RenderInfo(s state.AppState, props ViewProps) string {
	v := InfoView{}
	return v.Render(s, props)
}
