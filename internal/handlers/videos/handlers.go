package videos

import (
	"errors"
	"log"
	"net/http"

	"github.com/vlatan/transcript-relay/internal/drivers/rdb"
	"github.com/vlatan/transcript-relay/internal/integrations/yt"
	"github.com/vlatan/transcript-relay/internal/models"
	"github.com/vlatan/transcript-relay/internal/utils"
)

// GetVideoHandler serves the YouTube metadata of a video
func (s *Service) GetVideoHandler(w http.ResponseWriter, r *http.Request) {

	videoID := utils.GetVideoID(r)
	if videoID == "" {
		utils.JSONError(w, r, http.StatusBadRequest, utils.MsgMissingVideoID)
		return
	}

	getVideo := func() (models.VideoInfo, error) {
		info, err := s.yt.GetVideo(r.Context(), videoID)
		if err != nil {
			return models.VideoInfo{}, err
		}
		return *info, nil
	}

	info, err := rdb.GetCachedData(r.Context(), s.rdb, "video:"+videoID, s.config.CacheTimeout, getVideo)

	if errors.Is(err, yt.ErrVideoNotFound) {
		utils.JSONError(w, r, http.StatusNotFound, MsgVideoNotFound)
		return
	}

	if err != nil {
		log.Printf("Failed to get metadata for video '%s'; %v", videoID, err)
		utils.JSONError(w, r, http.StatusBadGateway, MsgVideoFailed)
		return
	}

	utils.WriteJSON(w, r, http.StatusOK, info)
}
