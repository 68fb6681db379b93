// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		cmd  CommandType
		want string
	}{
		{CmdSetRenderTarget, "SetRenderTarget"},
		{CmdSetViewport, "SetViewport"},
		{CmdClearViewport, "ClearViewport"},
		{CmdSetPipeline, "SetPipeline"},
		{CmdSetGpuParams, "SetGpuParams"},
		{CmdDraw, "Draw"},
		{CommandType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("CommandType(%d).String() = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	target := NewImageTarget(8, 8)
	params := NewGpuParams()
	pass := &Pass{Name: "blit", Fullscreen: true}
	quad := FullscreenQuad()

	rec.SetRenderTarget(target, FramebufferDepth)
	rec.SetViewport(FullRect2)
	rec.ClearViewport(FramebufferAll, gputypes.Color{R: 1, G: 0, B: 0, A: 1})
	rec.SetPipeline(pass)
	rec.SetGpuParams(params, BindParamBlocks, PerCameraBlock)
	rec.Draw(quad, quad.SubMesh(0), 0)
	rec.SetRenderTarget(nil, 0)

	cmds := rec.Commands()
	if len(cmds) != 7 {
		t.Fatalf("len(Commands()) = %d, want 7", len(cmds))
	}

	bind, ok := cmds[0].(SetRenderTargetCommand)
	if !ok || bind.Target != target || bind.ReadOnly != FramebufferDepth {
		t.Errorf("cmds[0] = %#v, want bind of target with read-only depth", cmds[0])
	}
	gp := cmds[4].(SetGpuParamsCommand)
	if gp.Params != params || gp.Flags != BindParamBlocks || len(gp.Blocks) != 1 || gp.Blocks[0] != PerCameraBlock {
		t.Errorf("cmds[4] = %#v", gp)
	}
	draw := cmds[5].(DrawCommand)
	if draw.Mesh != quad || draw.Target != target {
		t.Errorf("draw should record mesh and the bound target, got %#v", draw)
	}

	if got := rec.Count(CmdSetRenderTarget); got != 2 {
		t.Errorf("Count(SetRenderTarget) = %d, want 2", got)
	}
	if !strings.Contains(rec.String(), "  5 Draw") {
		t.Errorf("String() missing draw line:\n%s", rec.String())
	}

	rec.Reset()
	if len(rec.Commands()) != 0 {
		t.Error("Reset should drop all commands")
	}
	rec.Draw(quad, quad.SubMesh(0), 1)
	if rec.Commands()[0].(DrawCommand).Target != nil {
		t.Error("Reset should unbind the target")
	}
}
