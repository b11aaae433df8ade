// Copyright 2024 qbee.io
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go.qbee.io/useraudit/app/audit"
	"go.qbee.io/useraudit/app/inventory"
)

// labelWidth is the width of the label column in the text layout.
const labelWidth = 26

// TextOptions controls the human-readable layout.
type TextOptions struct {
	// Styled enables terminal styling of headings and labels.
	Styled bool
}

// Text writes report as fixed-order labeled blocks, one per account.
func Text(w io.Writer, rep *audit.Report, opts TextOptions) error {
	tw := newTextWriter(w, opts)

	tw.heading(fmt.Sprintf("User audit report for %s", rep.Host))
	tw.field("Generated", rep.Generated.UTC().Format(TimestampFormat))
	tw.field("Accounts", strconv.Itoa(len(rep.Records)))

	for i := range rep.Records {
		tw.blank()
		tw.record(&rep.Records[i])
	}

	return tw.err
}

// textWriter renders lines and keeps the first write error.
type textWriter struct {
	w            io.Writer
	err          error
	headingStyle lipgloss.Style
	labelStyle   lipgloss.Style
	warningStyle lipgloss.Style
	styled       bool
}

func newTextWriter(w io.Writer, opts TextOptions) *textWriter {
	tw := &textWriter{w: w, styled: opts.Styled}

	if opts.Styled {
		renderer := lipgloss.NewRenderer(w)

		tw.headingStyle = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
		tw.labelStyle = renderer.NewStyle().Foreground(lipgloss.Color("245"))
		tw.warningStyle = renderer.NewStyle().Foreground(lipgloss.Color("220"))
	}

	return tw
}

func (tw *textWriter) line(text string) {
	if tw.err != nil {
		return
	}

	_, tw.err = io.WriteString(tw.w, text+"\n")
}

func (tw *textWriter) blank() {
	tw.line("")
}

func (tw *textWriter) heading(text string) {
	if tw.styled {
		text = tw.headingStyle.Render(text)
	}

	tw.line(text)
}

// field writes label and value. Continuation lines of multi-line values are aligned with the value column.
func (tw *textWriter) field(label, value string) {
	tw.fieldLines(label, strings.Split(value, "\n"))
}

func (tw *textWriter) fieldLines(label string, lines []string) {
	labelText := fmt.Sprintf("%-*s", labelWidth, label+":")
	if tw.styled {
		labelText = tw.labelStyle.Render(labelText)
	}

	if len(lines) == 0 {
		tw.line(strings.TrimRight(labelText, " "))
		return
	}

	tw.line(labelText + lines[0])

	indent := strings.Repeat(" ", labelWidth)
	for _, line := range lines[1:] {
		tw.line(indent + line)
	}
}

// unavailable writes the unavailable marker along with its reason.
func (tw *textWriter) unavailable(label, reason string) {
	text := audit.UnavailableText
	if reason != "" {
		text += " (" + strings.ReplaceAll(reason, "\n", " ") + ")"
	}

	if tw.styled {
		text = tw.warningStyle.Render(text)
	}

	tw.field(label, text)
}

func (tw *textWriter) record(record *audit.Record) {
	user := record.Identity

	tw.heading(fmt.Sprintf("=== User: %s ===", user.Name))
	tw.field("UID", strconv.Itoa(user.UID))
	tw.field("GID", strconv.Itoa(user.GID))
	tw.field("Home", user.HomeDirectory)
	tw.field("Shell", user.Shell)
	tw.field("Comment", user.GECOS)

	textField(tw, "Last login", record.Login.LastLogin, emptyAsNone)
	textField(tw, "Last successful login", record.Login.LastSuccessfulLogin, emptyAsNone)
	textField(tw, "Password status", record.Password.Status, emptyAsNone)
	textField(tw, "Password expiry", record.Password.Expiry, emptyAsNone)

	textField(tw, "Privileged group member", record.Privilege.PrivilegedGroupMember, strconv.FormatBool)
	textField(tw, "Privileged groups", record.Privilege.PrivilegedGroups, func(groups []string) string {
		return emptyAsNone(strings.Join(groups, ", "))
	})
	textField(tw, "Sudoers text match", record.Privilege.SudoersTextMatch, strconv.FormatBool)

	if keys, ok := record.SSHKeys.Value(); ok {
		tw.field("SSH key count", strconv.Itoa(keys.KeyCount))
		tw.field("SSH keys last modified", emptyAsNone(keys.LastModified))
	} else {
		tw.unavailable("SSH key count", record.SSHKeys.Reason())
		tw.unavailable("SSH keys last modified", record.SSHKeys.Reason())
	}

	if home, ok := record.Home.Value(); ok {
		tw.field("Home exists", strconv.FormatBool(home.Exists))
		tw.field("Home owner", home.Owner)
		tw.field("Home mode", home.Mode)
		tw.field("Home world writable", strconv.FormatBool(home.WorldWritable))
		tw.field("Home owner is root", strconv.FormatBool(home.OwnerIsRoot))
	} else {
		for _, label := range []string{"Home exists", "Home owner", "Home mode", "Home world writable", "Home owner is root"} {
			tw.unavailable(label, record.Home.Reason())
		}
	}

	linesField(tw, "Active sessions", record.Sessions, func(sessions []string) []string { return sessions })
	linesField(tw, "Top processes", record.Processes, processLines)
	linesField(tw, "Failed logins", record.FailedLogins, func(entries []string) []string { return entries })
}

// textField writes a single value field.
func textField[T any](tw *textWriter, label string, field audit.Field[T], format func(T) string) {
	v, ok := field.Value()
	if !ok {
		tw.unavailable(label, field.Reason())
		return
	}

	tw.field(label, format(v))
}

// linesField writes a list field, one entry per line, or "none" for an empty list.
func linesField[T any](tw *textWriter, label string, field audit.Field[T], format func(T) []string) {
	v, ok := field.Value()
	if !ok {
		tw.unavailable(label, field.Reason())
		return
	}

	entries := format(v)
	if len(entries) == 0 {
		tw.field(label, NoneText)
		return
	}

	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = strings.ReplaceAll(entry, "\n", " ")
	}

	tw.fieldLines(label, lines)
}

func processLines(processes []inventory.Process) []string {
	if len(processes) == 0 {
		return nil
	}

	lines := make([]string, 0, len(processes)+1)
	lines = append(lines, fmt.Sprintf("%7s %5s %5s %10s  %s", "PID", "%CPU", "%MEM", "RSS(kB)", "COMMAND"))

	for _, process := range processes {
		lines = append(lines, fmt.Sprintf("%7d %5.1f %5.1f %10d  %s",
			process.PID, process.CPU, process.Memory, process.ResidentMemory, process.Command))
	}

	return lines
}

func emptyAsNone(text string) string {
	if text == "" {
		return NoneText
	}

	return text
}
