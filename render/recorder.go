// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// CommandType identifies the type of a recorded API call.
type CommandType uint8

const (
	CmdSetRenderTarget CommandType = iota // Bind or unbind a target
	CmdSetViewport                        // Set the viewport
	CmdClearViewport                      // Clear planes
	CmdSetPipeline                        // Bind a pass pipeline
	CmdSetGpuParams                       // Bind parameters
	CmdDraw                               // Draw a sub-mesh
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSetRenderTarget: "SetRenderTarget",
	CmdSetViewport:     "SetViewport",
	CmdClearViewport:   "ClearViewport",
	CmdSetPipeline:     "SetPipeline",
	CmdSetGpuParams:    "SetGpuParams",
	CmdDraw:            "Draw",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one recorded API call.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// SetRenderTargetCommand records SetRenderTarget.
type SetRenderTargetCommand struct {
	Target   RenderTarget
	ReadOnly FramebufferType
}

// Type implements Command.
func (SetRenderTargetCommand) Type() CommandType { return CmdSetRenderTarget }

// SetViewportCommand records SetViewport.
type SetViewportCommand struct {
	Area Rect2
}

// Type implements Command.
func (SetViewportCommand) Type() CommandType { return CmdSetViewport }

// ClearViewportCommand records ClearViewport.
type ClearViewportCommand struct {
	Buffers FramebufferType
	Color   gputypes.Color
}

// Type implements Command.
func (ClearViewportCommand) Type() CommandType { return CmdClearViewport }

// SetPipelineCommand records SetPipeline.
type SetPipelineCommand struct {
	Pass *Pass
}

// Type implements Command.
func (SetPipelineCommand) Type() CommandType { return CmdSetPipeline }

// SetGpuParamsCommand records SetGpuParams.
type SetGpuParamsCommand struct {
	Params *GpuParams
	Flags  BindFlags
	Blocks []string
}

// Type implements Command.
func (SetGpuParamsCommand) Type() CommandType { return CmdSetGpuParams }

// DrawCommand records Draw.
type DrawCommand struct {
	Mesh      *Mesh
	SubMesh   SubMesh
	Instances uint32
	Target    RenderTarget
}

// Type implements Command.
func (DrawCommand) Type() CommandType { return CmdDraw }

// Recorder is an API that records every call without executing it.
// Tests and debugging tools inspect the command stream afterwards.
//
// Recorder is not safe for concurrent use.
type Recorder struct {
	commands []Command
	target   RenderTarget
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{commands: make([]Command, 0, 64)}
}

// SetRenderTarget implements API.
func (r *Recorder) SetRenderTarget(target RenderTarget, readOnly FramebufferType) {
	r.target = target
	r.commands = append(r.commands, SetRenderTargetCommand{Target: target, ReadOnly: readOnly})
}

// SetViewport implements API.
func (r *Recorder) SetViewport(area Rect2) {
	r.commands = append(r.commands, SetViewportCommand{Area: area})
}

// ClearViewport implements API.
func (r *Recorder) ClearViewport(buffers FramebufferType, color gputypes.Color) {
	r.commands = append(r.commands, ClearViewportCommand{Buffers: buffers, Color: color})
}

// SetPipeline implements API.
func (r *Recorder) SetPipeline(pass *Pass) {
	r.commands = append(r.commands, SetPipelineCommand{Pass: pass})
}

// SetGpuParams implements API.
func (r *Recorder) SetGpuParams(params *GpuParams, flags BindFlags, blocks ...string) {
	r.commands = append(r.commands, SetGpuParamsCommand{
		Params: params,
		Flags:  flags,
		Blocks: append([]string(nil), blocks...),
	})
}

// Draw implements API.
func (r *Recorder) Draw(mesh *Mesh, sub SubMesh, instances uint32) {
	r.commands = append(r.commands, DrawCommand{Mesh: mesh, SubMesh: sub, Instances: instances, Target: r.target})
}

// Commands returns the recorded commands.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Count returns how many commands of type t were recorded.
func (r *Recorder) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Reset drops all recorded commands and the bound target.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.target = nil
}

// String lists the recorded command types, one per line.
func (r *Recorder) String() string {
	var sb strings.Builder
	for i, c := range r.commands {
		fmt.Fprintf(&sb, "%3d %s\n", i, c.Type())
	}
	return sb.String()
}

// Ensure Recorder implements API.
var _ API = (*Recorder)(nil)
