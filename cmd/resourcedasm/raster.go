package main

import "github.com/retrodasm/resourcedasm/raster"

func rasterBMP() raster.Format {
	return raster.WindowsBitmap
}
