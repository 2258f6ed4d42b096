package types

import "encoding/json"

// DefaultMeetingMinutes is the length of the single option synthesized when
// no durations are configured anywhere.
const DefaultMeetingMinutes = 30

// DurationCustomField is one extra intake question asked when a booker picks
// the owning duration.
type DurationCustomField struct {
	Key      string   `json:"key,omitempty"`
	Label    string   `json:"label"`
	Type     string   `json:"type,omitempty"`
	Required bool     `json:"required,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// DurationOption is one bookable meeting length with its per-duration
// approval policy and optional extra intake questions.
type DurationOption struct {
	Minutes               int                   `json:"minutes"`
	Note                  string                `json:"note,omitempty"`
	RequireApproval       bool                  `json:"requireApproval,omitempty"`
	AutoApproveAfterHours *int                  `json:"autoApproveAfterHours,omitempty"`
	CustomFields          []DurationCustomField `json:"customFields,omitempty"`
	Rate                  *float64              `json:"rate,omitempty"`
}

type ApprovalPolicy string

const (
	ApprovalNever      ApprovalPolicy = "never"
	ApprovalManualOnly ApprovalPolicy = "manual_only"
	ApprovalAutoAfter  ApprovalPolicy = "auto_after"
)

// ApprovalPolicy reports the three-state policy encoded by RequireApproval
// and AutoApproveAfterHours. autoApproveAfterHours = 0 (or absent) with
// approval required means manual approval only; a positive value means the
// booking auto-approves after that many hours of host inaction.
func (o DurationOption) ApprovalPolicy() (ApprovalPolicy, int) {
	if !o.RequireApproval {
		return ApprovalNever, 0
	}
	if o.AutoApproveAfterHours == nil || *o.AutoApproveAfterHours <= 0 {
		return ApprovalManualOnly, 0
	}
	return ApprovalAutoAfter, *o.AutoApproveAfterHours
}

// DurationList accepts both storage generations of meeting durations: the
// flat numeric form ([30, 60]) and the detailed-option form. Elements decode
// into DurationOption either way; marshaling always emits the detailed form.
type DurationList []DurationOption

func (d *DurationList) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	out := make(DurationList, 0, len(items))
	for _, item := range items {
		var minutes float64
		if err := json.Unmarshal(item, &minutes); err == nil {
			out = append(out, DurationOption{Minutes: int(minutes)})
			continue
		}
		var opt DurationOption
		if err := json.Unmarshal(item, &opt); err != nil {
			return err
		}
		out = append(out, opt)
	}
	*d = out
	return nil
}

// NormalizeDurations returns the detailed-option form for any stored shape.
// Empty input yields the single default option. Idempotent; applied at every
// boundary where duration data enters or leaves (read, resolve, push,
// org-defaults extraction) because both forms can be stored depending on the
// historical write path.
func NormalizeDurations(in DurationList) DurationList {
	if len(in) == 0 {
		return DurationList{{Minutes: DefaultMeetingMinutes}}
	}
	out := make(DurationList, len(in))
	copy(out, in)
	return out
}
