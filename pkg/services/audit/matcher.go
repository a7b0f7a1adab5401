package audit

import "github.com/de-tools/diag-audit/pkg/models/domain"

// MatchSettings returns the settings whose name equals criteria.SettingName or
// whose workspace name equals criteria.Workspace. When both criteria are set a
// setting satisfying either one matches.
func MatchSettings(settings []domain.DiagnosticSetting, criteria domain.MatchCriteria) []domain.DiagnosticSetting {
	var matched []domain.DiagnosticSetting
	for _, s := range settings {
		if matchesSetting(s, criteria) {
			matched = append(matched, s)
		}
	}
	return matched
}

func matchesSetting(s domain.DiagnosticSetting, criteria domain.MatchCriteria) bool {
	if criteria.SettingName != "" && s.Name == criteria.SettingName {
		return true
	}
	if criteria.Workspace != "" && s.WorkspaceID != "" && s.WorkspaceName() == criteria.Workspace {
		return true
	}
	return false
}
