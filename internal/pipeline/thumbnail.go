package pipeline

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"metaharvest/internal/logger"
)

// GenerateCDMThumbnail maps a CONTENTdm detail URL such as
// https://host/digital/collection/maps/id/42 to the CMS thumbnail service.
// The collection id follows the first "collection" segment; the record id
// is the last segment.
func GenerateCDMThumbnail(log *zap.Logger, rawURL string) (string, error) {
	log = logger.OrNop(log)

	segments := strings.Split(rawURL, "/")
	idx := -1
	for i, s := range segments {
		if s == "collection" {
			idx = i
			break
		}
	}
	if idx < 0 || idx+1 >= len(segments) {
		log.Warn("thumbnail source url has no collection segment", zap.String("url", rawURL))
		return "", errors.Wrapf(ErrNoCollectionSegment, "%s", rawURL)
	}
	collection := segments[idx+1]
	recordID := segments[len(segments)-1]

	u, err := url.Parse(rawURL)
	if err != nil {
		log.Warn("thumbnail source url does not parse", zap.String("url", rawURL), zap.Error(err))
		return "", errors.Wrapf(err, "parse thumbnail source %s", rawURL)
	}
	host := u.Host
	if u.User != nil {
		host = u.User.String() + "@" + host
	}

	return fmt.Sprintf("%s://%s/utils/getthumbnail/collection/%s/id/%s", u.Scheme, host, collection, recordID), nil
}
