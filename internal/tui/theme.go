package tui

import "github.com/charmbracelet/lipgloss"

// Theme цвета пикера. ANSI 256 для совместимости с большинством терминалов.
type Theme struct {
	Label              lipgloss.Color
	NormalText         lipgloss.Color
	FaintText          lipgloss.Color
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color
	Error              lipgloss.Color
	Success            lipgloss.Color
}

// DefaultTheme тема по умолчанию
var DefaultTheme = Theme{
	Label:              lipgloss.Color("39"),
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("24"),
	SelectedForeground: lipgloss.Color("231"),
	Error:              lipgloss.Color("196"),
	Success:            lipgloss.Color("42"),
}

// RenderStatus строка результата отправки формы
func (t Theme) RenderStatus(message string, success bool) string {
	color := t.Error
	if success {
		color = t.Success
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(message)
}

// RenderFieldError строка ошибки поля формы
func (t Theme) RenderFieldError(label, message string) string {
	return lipgloss.NewStyle().Foreground(t.FaintText).Render("  "+label+": ") +
		lipgloss.NewStyle().Foreground(t.Error).Render(message)
}
