// Package discovery announces and finds dfplayer bridges over mDNS.
//
// A bridge registers itself as a "_dfplayer._tcp" service with TXT records
// naming the serial port it drives and the tool version. Scanner browses for
// those services and returns Bridge values carrying the websocket and
// metrics URLs.
//
//	ad, err := discovery.Advertise("kitchen", 8090, "/dev/ttyUSB0", version.Version)
//	defer ad.Shutdown()
//
//	bridges, err := discovery.NewScanner().ScanForBridges(ctx)
package discovery
