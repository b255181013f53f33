package rgbimage

import(
	"fmt"
	"log"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/lupton-rgb/pkg/lupton"
)

/* Example config file ...

verbosity: 1
params:
  beta: 3
  alpha: 0.06
  q: 3.5
  bandscalings: [1.0, 1.176, 1.818]
  oversaturatefactor: 2
output:
  filename: m51.jpg
  quality: 100
  hdrfilename: m51.hdr

*/

type OutputConfig struct {
	Filename      string   // .jpg, .jpeg or .png; numbered per frame if there is more than one
	Quality       int      // JPEG quality, 1-100
	HDRFilename   string   // if set, the mapped frames are also written as Radiance HDR
}

type Config struct {
	Verbosity     int
	Params        lupton.Params
	Output        OutputConfig
}

const DefaultJPEGQuality = 95

func NewConfig() Config {
	return Config{
		Params: lupton.DefaultParams(),
		Output: OutputConfig{
			Filename: "out.jpg",
			Quality:  DefaultJPEGQuality,
		},
	}
}

// newConfigFromYaml starts from the defaults, so a config file only
// needs to list what it changes.
func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parse yaml: %v", err)
	}
	if err := c.Params.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Printf("Can't marshal config yaml: %v\n", err)
		return ""
	}
	return string(b)
}
