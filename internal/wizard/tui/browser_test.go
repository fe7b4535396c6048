package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/skyreg/internal/discovery"
)

func TestParseManualAddress(t *testing.T) {
	tests := []struct {
		name     string
		addr     string
		wantIP   string
		wantPort int
		wantErr  bool
	}{
		{"host and port", "192.168.1.20:9000", "192.168.1.20", 9000, false},
		{"bare host", "kiosk-3.local", "kiosk-3.local", 8080, false},
		{"padded", "  10.0.0.5:8080 ", "10.0.0.5", 8080, false},
		{"empty", "", "", 0, true},
		{"bad port", "10.0.0.5:http", "", 0, true},
		{"port out of range", "10.0.0.5:70000", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := ParseManualAddress(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseManualAddress(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if inst.IP != tt.wantIP || inst.Port != tt.wantPort {
				t.Errorf("ParseManualAddress(%q) = %s:%d, want %s:%d", tt.addr, inst.IP, inst.Port, tt.wantIP, tt.wantPort)
			}
		})
	}
}

func browserWith(t *testing.T, instances ...*discovery.Instance) BrowserModel {
	t.Helper()
	m := NewBrowserModel(time.Second)
	updated, _ := m.Update(scanStartMsg{})
	updated, _ = updated.(BrowserModel).Update(scanCompleteMsg{instances: instances})
	return updated.(BrowserModel)
}

func TestBrowser_ScanResultsAndSelect(t *testing.T) {
	kiosk := &discovery.Instance{
		Name:     "skyreg on kiosk-3",
		Host:     "kiosk-3.local.",
		IP:       "192.168.1.20",
		Port:     8080,
		Metadata: map[string]string{"version": "1.2.0", "path": "/ws"},
	}
	m := browserWith(t, kiosk)

	if m.Scanning {
		t.Fatal("still scanning after scan completed")
	}
	if got := len(m.InstanceList.Items()); got != 1 {
		t.Fatalf("items = %d, want 1", got)
	}
	if v := m.View(); v == "" {
		t.Error("View() is empty")
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(BrowserModel)
	if m.Selected != kiosk {
		t.Errorf("Selected = %v, want %v", m.Selected, kiosk)
	}
	if cmd == nil {
		t.Error("selecting did not quit")
	}
}

func TestBrowser_ScanError(t *testing.T) {
	m := NewBrowserModel(0)
	if m.Scanner.Timeout != discovery.DefaultScanTimeout {
		t.Errorf("Timeout = %v, want default", m.Scanner.Timeout)
	}

	updated, _ := m.Update(scanCompleteMsg{err: errors.New("no multicast interface")})
	m = updated.(BrowserModel)
	if m.Err == nil {
		t.Error("scan error not recorded")
	}

	// Enter with no servers does nothing
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if updated.(BrowserModel).Selected != nil || cmd != nil {
		t.Error("enter selected something from an empty list")
	}
}

func TestBrowser_ManualEntry(t *testing.T) {
	m := browserWith(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	m = updated.(BrowserModel)
	if !m.ManualMode {
		t.Fatal("m did not open manual entry")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("10.0.0.5:9000")})
	updated, _ = updated.(BrowserModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(BrowserModel)

	if m.ManualMode {
		t.Error("manual entry still open after confirm")
	}
	if got := len(m.InstanceList.Items()); got != 1 {
		t.Fatalf("items = %d, want 1", got)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(BrowserModel)
	if m.Selected == nil || m.Selected.SessionURL() != "ws://10.0.0.5:9000/ws" {
		t.Errorf("Selected = %v", m.Selected)
	}
}

func TestBrowser_ManualEntryRejectsBadAddress(t *testing.T) {
	m := browserWith(t)
	m.ManualMode = true
	m.AddressInput.Focus()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(BrowserModel)
	if !m.ManualMode || m.Err == nil {
		t.Errorf("empty address accepted: manual %v err %v", m.ManualMode, m.Err)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if updated.(BrowserModel).ManualMode {
		t.Error("esc did not close manual entry")
	}
}
