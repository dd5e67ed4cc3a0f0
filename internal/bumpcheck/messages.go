package bumpcheck

const (
	defaultManifestNotStagedTemplateConstant    = "%s is not staged for commit. Stage the file and make sure it contains the bumped version."
	defaultStagedContentMissingTemplateConstant = "no staged copy of %s is available. Run git add %s first."
	defaultVersionNotBumpedTemplateConstant     = "the version in %s must be bumped relative to HEAD. Staged: %s, HEAD: %s."
)

// MessageCatalog holds the diagnostic templates the check interpolates. The
// templates are a swappable resource so alternate catalogs can be supplied
// without touching the check logic.
type MessageCatalog struct {
	// ManifestNotStagedTemplate interpolates the manifest path.
	ManifestNotStagedTemplate string
	// StagedContentMissingTemplate interpolates the manifest path twice.
	StagedContentMissingTemplate string
	// VersionNotBumpedTemplate interpolates the manifest path, the staged version, and the head version.
	VersionNotBumpedTemplate string
}

// DefaultMessageCatalog returns the English diagnostic templates.
func DefaultMessageCatalog() MessageCatalog {
	return MessageCatalog{
		ManifestNotStagedTemplate:    defaultManifestNotStagedTemplateConstant,
		StagedContentMissingTemplate: defaultStagedContentMissingTemplateConstant,
		VersionNotBumpedTemplate:     defaultVersionNotBumpedTemplateConstant,
	}
}

func (catalog MessageCatalog) sanitize() MessageCatalog {
	defaults := DefaultMessageCatalog()

	sanitized := catalog
	if len(sanitized.ManifestNotStagedTemplate) == 0 {
		sanitized.ManifestNotStagedTemplate = defaults.ManifestNotStagedTemplate
	}
	if len(sanitized.StagedContentMissingTemplate) == 0 {
		sanitized.StagedContentMissingTemplate = defaults.StagedContentMissingTemplate
	}
	if len(sanitized.VersionNotBumpedTemplate) == 0 {
		sanitized.VersionNotBumpedTemplate = defaults.VersionNotBumpedTemplate
	}
	return sanitized
}
