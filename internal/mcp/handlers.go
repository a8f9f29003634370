package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/profile"
)

// CheckInput defines parameters for the gate_check tool.
type CheckInput struct {
	Command    string `json:"command" jsonschema:"shell command to validate"`
	ProjectDir string `json:"project_dir" jsonschema:"project directory the command would run in"`
}

// CheckOutput contains the gate decision.
type CheckOutput struct {
	Allowed          bool   `json:"allowed"`
	Rule             string `json:"rule,omitempty"`
	Reason           string `json:"reason,omitempty"`
	OffendingSegment string `json:"offending_segment,omitempty"`
}

// ProfileInput defines parameters for the gate_profile tool.
type ProfileInput struct {
	ProjectDir string `json:"project_dir" jsonschema:"project directory to profile"`
}

// ProfileOutput describes a project's security profile.
type ProfileOutput struct {
	BaseCommands   []string            `json:"base_commands"`
	StackCommands  []string            `json:"stack_commands"`
	ScriptCommands []string            `json:"script_commands"`
	CustomCommands []string            `json:"custom_commands"`
	DetectedStack  map[string][]string `json:"detected_stack"`
	CreatedAt      string              `json:"created_at"`
	ProjectHash    string              `json:"project_hash"`
}

// ResetCacheInput is empty — no parameters needed.
type ResetCacheInput struct{}

// ResetCacheOutput confirms the reset.
type ResetCacheOutput struct {
	Status string `json:"status"`
}

func (s *Server) handleCheck(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	d := s.gate.Validate(input.Command, input.ProjectDir)
	out := CheckOutput{
		Allowed:          d.Allowed,
		Rule:             d.Rule,
		Reason:           d.Reason,
		OffendingSegment: d.OffendingSegment,
	}
	if !d.Allowed {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleProfile(ctx context.Context, req *mcpsdk.CallToolRequest, input ProfileInput) (*mcpsdk.CallToolResult, ProfileOutput, error) {
	p := s.gate.Profiles().GetSecurityProfile(input.ProjectDir)
	return nil, profileOutput(p), nil
}

func (s *Server) handleResetCache(ctx context.Context, req *mcpsdk.CallToolRequest, input ResetCacheInput) (*mcpsdk.CallToolResult, ResetCacheOutput, error) {
	s.gate.ResetProfileCache()
	return nil, ResetCacheOutput{Status: "reset"}, nil
}

func profileOutput(p *profile.SecurityProfile) ProfileOutput {
	return ProfileOutput{
		BaseCommands:   p.BaseCommands,
		StackCommands:  p.StackCommands,
		ScriptCommands: p.ScriptCommands,
		CustomCommands: p.CustomCommands,
		DetectedStack:  p.DetectedStack,
		CreatedAt:      p.CreatedAt,
		ProjectHash:    p.ProjectHash,
	}
}
