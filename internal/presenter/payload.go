package presenter

import (
	"net/url"
	"strconv"
)

// Postback actions. The payload is a flat key=value query string; every
// postback is self-describing because no conversation state survives on
// the server between events.
const (
	ActionSearch        = "search"
	ActionPreAdjust     = "pre_adjust"
	ActionConfirmAdjust = "confirm_adjust"
	ActionCancel        = "cancel"
	ActionCheckBranches = "check_branches"
	ActionReserve       = "reserve"
)

// Payload parameter keys.
const (
	KeyAction   = "action"
	KeyKeyword  = "keyword"
	KeyPage     = "page"
	KeyDotID    = "dot_id"
	KeyChange   = "change"
	KeyTireInfo = "tire_info"
	KeyTireID   = "tire_id"
)

func searchPayload(keyword string, page int) string {
	v := url.Values{}
	v.Set(KeyAction, ActionSearch)
	v.Set(KeyKeyword, keyword)
	v.Set(KeyPage, strconv.Itoa(page))
	return v.Encode()
}

func preAdjustPayload(dotID string, change int, tireInfo string) string {
	v := url.Values{}
	v.Set(KeyAction, ActionPreAdjust)
	v.Set(KeyDotID, dotID)
	v.Set(KeyChange, strconv.Itoa(change))
	v.Set(KeyTireInfo, tireInfo)
	return v.Encode()
}

func confirmAdjustPayload(dotID string, change int) string {
	v := url.Values{}
	v.Set(KeyAction, ActionConfirmAdjust)
	v.Set(KeyDotID, dotID)
	v.Set(KeyChange, strconv.Itoa(change))
	return v.Encode()
}

func cancelPayload() string {
	v := url.Values{}
	v.Set(KeyAction, ActionCancel)
	return v.Encode()
}

func checkBranchesPayload(tireID string) string {
	v := url.Values{}
	v.Set(KeyAction, ActionCheckBranches)
	v.Set(KeyTireID, tireID)
	return v.Encode()
}

func reservePayload(tireID string) string {
	v := url.Values{}
	v.Set(KeyAction, ActionReserve)
	v.Set(KeyTireID, tireID)
	return v.Encode()
}
