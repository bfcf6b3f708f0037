package resources

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"

	"github.com/npillmayer/notedown/core"
	"github.com/npillmayer/schuko"
)

// DefaultAppKey names the cache folder if the configuration does not
// carry an 'app-key'.
const DefaultAppKey = "notedown"

// DownloadCachedFile will download a url to a local file (usually located in the
// user's cache directory).
func DownloadCachedFile(filepath string, url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return core.WrapError(err, core.ECONNECTION, "cannot download %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("HTTP status %s", resp.Status)
		if resp.StatusCode == http.StatusNotFound {
			return core.WrapError(err, core.EMISSING, "resource not found: %s", url)
		}
		return core.WrapError(err, core.ECONNECTION, "cannot download %s", url)
	}
	out, err := os.Create(filepath)
	if err != nil {
		return core.WrapError(err, core.ECONNECTION, "cannot create cache file %s", filepath)
	}
	defer out.Close()
	if _, err = io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(filepath)
		return core.WrapError(err, core.ECONNECTION, "cannot download %s", url)
	}
	return nil
}

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key, taken as `app-key` from the configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(conf schuko.Configuration, subfolders ...string) (string, error) {
	appkey := DefaultAppKey
	if conf != nil && conf.GetString("app-key") != "" {
		appkey = conf.GetString("app-key")
	}
	tracer().Debugf("config[%s] = %s", "app-key", appkey)
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "no user cache directory")
	}
	subs := path.Join(subfolders...)
	cachedir = path.Join(cachedir, appkey, subs)
	tracer().Infof("caching in %s", cachedir)
	_, err = os.Stat(cachedir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(cachedir, 0755)
		if err != nil {
			return "", core.WrapError(err, core.EINVALID, "cache directory cannot be created: %s", cachedir)
		}
	}
	return cachedir, nil
}

// CachedFile returns the path of the cached copy of a remote resource,
// downloading it first if it is not yet in the cache.
func CachedFile(conf schuko.Configuration, url string) (string, error) {
	dir, err := CacheDirPath(conf, "resources")
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(url))
	fpath := path.Join(dir, hex.EncodeToString(sum[:8])+"-"+path.Base(url))
	if _, err := os.Stat(fpath); err == nil {
		tracer().Debugf("%s found in cache", url)
		return fpath, nil
	}
	tracer().Infof("downloading %s", url)
	if err := DownloadCachedFile(fpath, url); err != nil {
		return "", err
	}
	return fpath, nil
}
